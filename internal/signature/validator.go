// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package signature

import (
	"fmt"
	"strings"

	"github.com/tranhoangtu-it/hallucination-firewall/internal/astscan"
)

// validationError is one (Kind, message) pair produced while comparing a
// call site's shape against its resolved signature.
type validationError struct {
	kind    string
	message string
}

// Validate compares a call's argument shape against its resolved
// signature, checking the positional argument count, then required
// arguments, then unknown keyword arguments, and accumulating every
// violation found.
func Validate(call astscan.FunctionCall, sig *SignatureInfo) []validationError {
	// Splat args make the call shape unknowable — skip entirely.
	if call.HasStarArgs || call.HasStarKwargs {
		return nil
	}
	// A fully variadic signature accepts anything.
	if sig.HasVarPositional && sig.HasVarKeyword {
		return nil
	}

	var errs []validationError

	var required []ParamInfo
	for _, p := range sig.Params {
		if p.Required {
			required = append(required, p)
		}
	}
	total := len(sig.Params)

	if !sig.HasVarPositional && call.PositionalCount > total {
		errs = append(errs, validationError{
			kind:    "wrong_signature",
			message: fmt.Sprintf("Too many arguments: got %d, expected at most %d", call.PositionalCount, total),
		})
	}

	provided := call.PositionalCount + len(call.Keywords)
	if provided < len(required) {
		var missing []string
		for _, p := range required[provided:] {
			missing = append(missing, p.Name)
		}
		errs = append(errs, validationError{
			kind:    "missing_required_arg",
			message: "Missing required argument(s): " + strings.Join(missing, ", "),
		})
	}

	if !sig.HasVarKeyword {
		known := make(map[string]bool, len(sig.Params))
		for _, p := range sig.Params {
			known[p.Name] = true
		}
		for _, kw := range call.Keywords {
			if !known[kw] {
				errs = append(errs, validationError{
					kind:    "unknown_parameter",
					message: fmt.Sprintf("Unknown keyword argument: '%s'", kw),
				})
			}
		}
	}

	return errs
}
