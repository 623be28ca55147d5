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

package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const defaultInput = "example.bmp"

type rootOptions struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	cmd := &cobra.Command{
		Use:           "bmpproc",
		Short:         "Rotate and blur BMP images using parallel workers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every transform to stderr")

	cmd.AddCommand(newProcessCmd(&opts), newBenchCmd(&opts))
	return cmd
}

func (o *rootOptions) logger() *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// printer formats numbers with thousands separators.
func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// inputArg returns the single optional positional argument.
func inputArg(args []string) string {
	if len(args) == 0 {
		return defaultInput
	}
	return args[0]
}

// outputName returns dir/<stem>_<suffix><ext> for input.
func outputName(dir, input, suffix string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+"_"+suffix+ext)
}
