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

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// linePrompter asks questions on a terminal, one answer per line.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

// Select lists choices with their numbers and accepts either a number or
// the choice itself. Invalid answers are asked again.
func (p *linePrompter) Select(ctx context.Context, message string, choices []string) (string, error) {
	for {
		fmt.Fprintf(p.out, "? %s\n", message)
		for i, c := range choices {
			fmt.Fprintf(p.out, "  %d) %s\n", i+1, c)
		}
		fmt.Fprint(p.out, "> ")

		answer, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(choices) {
			return choices[n-1], nil
		}
		if slices.Contains(choices, answer) {
			return answer, nil
		}
		fmt.Fprintf(p.out, "%q is not one of the choices\n", answer)
	}
}

// Input returns the trimmed line typed after message.
func (p *linePrompter) Input(ctx context.Context, message string) (string, error) {
	fmt.Fprintf(p.out, "? %s ", message)
	return p.readLine(ctx)
}

func (p *linePrompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
