// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoAddress = errors.New("no HTTP address is configured")
	errNoHandler = errors.New("no HTTP handler is given")
)
