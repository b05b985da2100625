// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides fault-tolerant conversions of query and form values.

Values reaching these helpers have usually been validated already (e.g. a
page size checked against its allowed choices), so parse failures collapse
to a default instead of an error.

Do not use this package if distinguishing between malformed data and zero values
is important; use [strconv] directly instead.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD converts a string to an int, returning def if the string is empty or malformed.
func ToIntD(str string, def int) int {
	str = strings.TrimSpace(str)
	if str == "" {
		return def
	}

	if v, err := strconv.Atoi(str); err == nil {
		return v
	}

	return def
}

// ToBoolP parses a boolean string ("true", "1", "false", "0").
// It returns nil when the string is empty or malformed, meaning "not set".
func ToBoolP(str string) *bool {
	v, err := strconv.ParseBool(strings.TrimSpace(str))
	if err != nil {
		return nil
	}
	return &v
}
