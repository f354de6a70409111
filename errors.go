package mailverify

import "errors"

var (
	// ErrResolutionUnavailable is returned when an MX check is requested
	// but the validator has no usable DNS capability. It is a
	// configuration problem, never a verdict on the address.
	ErrResolutionUnavailable = errors.New("mailverify: MX resolution unavailable")

	// ErrInvalidProxy is returned by NewProber for an unusable proxy URL.
	ErrInvalidProxy = errors.New("mailverify: invalid proxy URL")

	// ErrInvalidProberConfig is returned by NewProber when the HELO name
	// or reverse-path contains CR or LF.
	ErrInvalidProberConfig = errors.New("mailverify: invalid prober configuration")
)
