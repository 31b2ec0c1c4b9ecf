// seehuhn.de/go/riscosfont - a library for reading RISC OS outline fonts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package riscosfont

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorKind classifies a [FormatError].
type ErrorKind int

// These are the possible values for [ErrorKind].
const (
	BadSignature ErrorKind = iota + 1
	UnsupportedFormat
	UnsupportedVersion
	InvariantViolation
)

func (k ErrorKind) String() string {
	switch k {
	case BadSignature:
		return "bad signature"
	case UnsupportedFormat:
		return "unsupported format"
	case UnsupportedVersion:
		return "unsupported version"
	case InvariantViolation:
		return "invariant violation"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// FormatError indicates that a font file does not follow the expected
// format, or uses a feature which is not supported by this library.
type FormatError struct {
	SubSystem string
	Kind      ErrorKind
	Reason    string
}

func (err *FormatError) Error() string {
	return err.SubSystem + ": " + err.Reason
}

// BoundsError indicates that a read would extend beyond the end of the
// font data.
type BoundsError struct {
	SubSystem string
	Pos       int64 // start of the attempted read
	Size      int64 // number of bytes requested
	Len       int64 // total length of the buffer
}

func (err *BoundsError) Error() string {
	return fmt.Sprintf("%s%+d: cannot read %d bytes from a buffer of length %d",
		err.SubSystem, err.Pos, err.Size, err.Len)
}

// IsFormatError returns true if err is or wraps a [FormatError].
func IsFormatError(err error) bool {
	var formatErr *FormatError
	return errors.As(err, &formatErr)
}

// IsUnsupported returns true if err is or wraps a [FormatError] which
// indicates an unsupported format or version.
func IsUnsupported(err error) bool {
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		return false
	}
	return formatErr.Kind == UnsupportedFormat || formatErr.Kind == UnsupportedVersion
}

// IsBounds returns true if err is or wraps a [BoundsError].
func IsBounds(err error) bool {
	var boundsErr *BoundsError
	return errors.As(err, &boundsErr)
}
