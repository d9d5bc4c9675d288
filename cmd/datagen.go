/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

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
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fracpete/goweka/internal/jvm"
	"github.com/fracpete/goweka/pkg/datagenerators"
	"github.com/spf13/cobra"
)

// Flags for datagen
const (
	FlagMaxHeap = "max-heap"
)

var (
	datagenJars    string
	datagenMaxHeap string
)

// datagenCmd represents the datagen command
var datagenCmd = &cobra.Command{
	Use:   "datagen [flags] -- classname [options...]",
	Short: "用WEKA数据生成器生成人工数据集",
	Long: "按类名创建数据生成器并调用WEKA的生成入口。\n" +
		"classname之后的参数原样作为生成器自身的选项。",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("未提供数据生成器类名")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runDatagen(args); err != nil {
			fmt.Println(err)
		}
		return nil
	},
}

func runDatagen(args []string) error {
	config := &jvm.Config{
		MaxHeapSize: datagenMaxHeap,
		Packages:    true,
	}
	if datagenJars != "" {
		config.ClassPath = strings.Split(datagenJars, string(os.PathListSeparator))
	}
	if err := jvm.Start(config); err != nil {
		return err
	}
	defer func() {
		_ = jvm.Stop()
	}()

	env, err := jvm.Env()
	if err != nil {
		return err
	}

	generator, err := datagenerators.FromClassName(env, args[0])
	if err != nil {
		return err
	}
	if len(args) > 1 {
		if err := generator.SetOptions(args[1:]); err != nil {
			return err
		}
	}

	return datagenerators.MakeData(env, generator, args[1:])
}

func init() {
	rootCmd.AddCommand(datagenCmd)

	datagenCmd.Flags().StringVarP(&datagenJars, FlagJars, "j", "",
		"classpath路径段，用系统路径分隔符连接")
	datagenCmd.Flags().StringVarP(&datagenMaxHeap, FlagMaxHeap, "X", "",
		"JVM最大堆内存，如512m")
}
