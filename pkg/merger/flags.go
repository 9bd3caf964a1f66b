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

package merger

// Flags read outside the handler table.
const (
	FlagConfig                = "config"
	FlagEnv                   = "env"
	FlagContext               = "context"
	FlagWatch                 = "watch"
	FlagWatchAggregateTimeout = "watch-aggregate-timeout"
	FlagWatchPoll             = "watch-poll"
	FlagWatchStdin            = "watch-stdin"
	FlagOutputFilename        = "output-filename"
)

// Kind describes how a flag's occurrences are read.
type Kind int

const (
	// Scalar passes every occurrence's value to the handler.
	Scalar Kind = iota
	// Pair splits every occurrence at its first "=" into a key and a value.
	Pair
	// Presence calls the handler for every truthy occurrence.
	Presence
	// TriState calls the handler for literal true and false only.
	TriState
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Pair:
		return "pair"
	case Presence:
		return "presence"
	case TriState:
		return "tristate"
	default:
		return "unknown"
	}
}

// IsBool reports whether flags of this kind take no value on the command line.
func (k Kind) IsBool() bool {
	return k == Presence || k == TriState
}

// Flag describes one command-line flag the pipeline understands.
type Flag struct {
	Name  string
	Kind  Kind
	Usage string
}

// pipelineFlags are consumed by the locator, the loader, argument
// shortcuts and finalization rather than by handlers.
var pipelineFlags = []Flag{
	{Name: "d", Kind: Presence, Usage: "shortcut for --debug --devtool eval-cheap-module-source-map --output-pathinfo"},
	{Name: "p", Kind: Presence, Usage: "shortcut for --optimize-minimize --define process.env.NODE_ENV='production'"},
	{Name: FlagConfig, Kind: Scalar, Usage: "path to a config file, repeatable"},
	{Name: FlagEnv, Kind: Scalar, Usage: "environment passed to config functions (--env.key=value or --env value)"},
	{Name: FlagContext, Kind: Scalar, Usage: "root directory for resolving entry points"},
	{Name: FlagWatch, Kind: Presence, Usage: "watch the filesystem for changes"},
	{Name: FlagWatchAggregateTimeout, Kind: Scalar, Usage: "timeout for gathering changes while watching"},
	{Name: FlagWatchPoll, Kind: Scalar, Usage: "poll interval in ms, or true for the default"},
	{Name: FlagWatchStdin, Kind: Presence, Usage: "exit the process when stdin is closed"},
}

// Flags returns every flag the pipeline reads: pipeline flags first, then
// the handler table in order.
func Flags() []Flag {
	out := make([]Flag, 0, len(pipelineFlags)+len(handlers()))
	out = append(out, pipelineFlags...)
	for _, h := range handlers() {
		out = append(out, Flag{Name: h.Flag, Kind: h.Kind, Usage: h.Usage})
	}
	return out
}
