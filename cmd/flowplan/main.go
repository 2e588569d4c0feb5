/*
Copyright 2022 The l7mp/stunner team.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/l7mp/flowplan/pkg/convert"
	"github.com/l7mp/flowplan/pkg/engine"
	"github.com/l7mp/flowplan/pkg/plan"
	"github.com/l7mp/flowplan/pkg/util"
	"github.com/l7mp/flowplan/pkg/visualize"
)

var (
	verbosity int
	format    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "flowplan",
		Short:        "Build, validate and visualize distributed tuple-processing plans",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 0, "log verbosity level")

	validateCmd := &cobra.Command{
		Use:   "validate <plan.yaml>",
		Short: "Compile a declarative plan document and report structural errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cp, name, err := compileFile(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: ok (%d nodes, %d sinks, %d traps)\n",
				name, len(cp.Nodes), len(cp.Sinks), len(cp.Traps))
			return nil
		},
	}

	vizCmd := &cobra.Command{
		Use:   "viz <plan.yaml>",
		Short: "Render a declarative plan document as a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cp, name, err := compileFile(args[0])
			if err != nil {
				return err
			}
			switch format {
			case "dot":
				gen := &visualize.DotGenerator{}
				fmt.Print(gen.Generate(cp, name))
			case "mermaid":
				gen := &visualize.MermaidGenerator{}
				fmt.Print(gen.Generate(cp, name))
			default:
				return fmt.Errorf("unknown output format %q", format)
			}
			return nil
		},
	}
	vizCmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot or mermaid")

	rootCmd.AddCommand(validateCmd, vizCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func compileFile(path string) (*engine.CompiledPlan, string, error) {
	log := util.NewLogger(verbosity)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	spec, err := convert.Parse(data)
	if err != nil {
		return nil, "", err
	}

	p, err := convert.Convert(spec, plan.WithLogger(log))
	if err != nil {
		return nil, "", err
	}

	cp, err := engine.Compile(p, log)
	if err != nil {
		return nil, "", err
	}
	return cp, spec.Name, nil
}
