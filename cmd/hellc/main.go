// This file is part of hellc - https://github.com/esoteric-programmer/hellc
//
// Copyright 2024 The hellc Authors
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

// Command hellc lowers a JSON-encoded IR module into HeLL assembly or a
// resolved Malbolge-Unshackled image. It carries no front-end parsing: the
// textual language this IR is distilled from is out of scope, and hellc
// only ever sees the module already in its wire form.
package main

import (
	"flag"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/esoteric-programmer/hellc/ir"
	"github.com/esoteric-programmer/hellc/layout"
	"github.com/esoteric-programmer/hellc/lower"
	"github.com/esoteric-programmer/hellc/output"
)

var (
	inputPath  string
	outputPath string
	target     string
	format     string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hellc",
		Short:         "Translate an IR module into HeLL or Malbolge Unshackled",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBuild,
	}
	root.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "path to the IR module (default: stdin)")
	root.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "path to write the result (default: stdout)")
	root.Flags().StringVar(&target, "target", "hell", "output target: hell or mu")
	root.Flags().StringVar(&format, "format", "json", "input module encoding: json or binary")
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	root.AddCommand(newConvertCmd())
	return root
}

func newConvertCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an IR module between its json and binary encodings",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(inputPath)
			if err != nil {
				return err
			}
			defer in.Close()
			module, err := readModule(in, from)
			if err != nil {
				return err
			}
			out, err := openOutput(outputPath)
			if err != nil {
				return err
			}
			defer out.Close()
			return writeModule(out, module, to)
		},
	}
	cmd.Flags().StringVar(&from, "from", "json", "source encoding: json or binary")
	cmd.Flags().StringVar(&to, "to", "binary", "destination encoding: json or binary")
	return cmd
}

func readModule(r io.Reader, format string) (*ir.Module, error) {
	switch format {
	case "json":
		return decodeModule(r)
	case "binary":
		return decodeModuleBinary(r)
	default:
		return nil, errors.Errorf("hellc: unknown module encoding %q (want json or binary)", format)
	}
}

func writeModule(w io.Writer, module *ir.Module, format string) error {
	switch format {
	case "json":
		return encodeModuleJSON(w, module)
	case "binary":
		return encodeModuleBinary(w, module)
	default:
		return errors.Errorf("hellc: unknown module encoding %q (want json or binary)", format)
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	module, err := readModule(in, format)
	if err != nil {
		return err
	}

	program, err := lower.Lower(module)
	if err != nil {
		return errors.Wrap(err, "hellc: lowering")
	}

	var write func(io.Writer) error
	switch target {
	case "hell":
		write = func(w io.Writer) error { return output.WriteHeLL(w, program) }
	case "mu":
		if err := layout.Resolve(program); err != nil {
			return errors.Wrap(err, "hellc: layout")
		}
		write = func(w io.Writer) error { return output.WriteMalbolgeUnshackled(w, program) }
	default:
		return errors.Errorf("hellc: unknown target %q (want hell or mu)", target)
	}

	out, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	glog.V(1).Infof("hellc: writing %s target to %s", target, displayName(outputPath))
	return write(out)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "hellc: open input %q", path)
	}
	return f, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "hellc: create output %q", path)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func displayName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}

func main() {
	defer glog.Flush()

	if err := newRootCmd().Execute(); err != nil {
		glog.Errorf("hellc: %+v", err)
		os.Exit(1)
	}
}
