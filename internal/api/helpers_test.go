// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import stderrors "errors"

func errorsAs(err error, target any) bool {
	return stderrors.As(err, target)
}
