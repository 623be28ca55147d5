// Copyright 2025 go-raster Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package raster

import (
	"errors"
	"fmt"
)

// Standard error kinds.
var (
	ErrIO         = errors.New("raster: i/o error")
	ErrValidation = errors.New("raster: validation error")
)

// SizeMismatch returns an ErrValidation describing a buffer whose length does
// not match the geometry it is used with.
func SizeMismatch(op string, got, want int) error {
	return fmt.Errorf("%w: %s: buffer is %d bytes, want %d", ErrValidation, op, got, want)
}
