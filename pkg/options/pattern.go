// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package options

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is a compiled module path test.
type Pattern struct {
	re *regexp.Regexp
}

// NewPattern compiles expr. A "/.../" wrapper, as written in config files,
// is stripped; trailing regex flags are not supported.
func NewPattern(expr string) (*Pattern, error) {
	if len(expr) >= 2 && strings.HasPrefix(expr, "/") && strings.HasSuffix(expr, "/") {
		expr = expr[1 : len(expr)-1]
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid test pattern %q: %w", expr, err)
	}
	return &Pattern{re: re}, nil
}

// ExtensionPattern matches any path ending in "." followed by ext taken literally.
func ExtensionPattern(ext string) *Pattern {
	return &Pattern{re: regexp.MustCompile(`\.` + regexp.QuoteMeta(ext) + `$`)}
}

// MatchString reports whether path matches.
func (p *Pattern) MatchString(path string) bool {
	return p.re != nil && p.re.MatchString(path)
}

func (p *Pattern) String() string {
	if p.re == nil {
		return ""
	}
	return p.re.String()
}
