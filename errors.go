package tardis

import "errors"

// ErrPacketSourceLengthMismatch is returned by Run when packet_nu,
// packet_mu, and packet_energy are not all the same length.
var ErrPacketSourceLengthMismatch = errors.New("tardis: packet_nu/packet_mu/packet_energy must be equal length")
