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
	"strings"

	"github.com/fracpete/goweka/internal/registry"
	"github.com/spf13/cobra"
)

var historyMysqlHost string

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "查看实验运行记录",
	Long:  "列出数据库中保存的实验运行记录及其状态。",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if historyMysqlHost == "" {
			return fmt.Errorf("未提供运行记录数据库地址")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runHistory(); err != nil {
			fmt.Println(err)
		}
		return nil
	},
}

func runHistory() error {
	dao, err := registry.NewDao(historyMysqlHost)
	if err != nil {
		return err
	}

	runs, err := dao.QueryAllRuns()
	if err != nil {
		return err
	}

	// 表头用ASCII，宽字符会破坏%-Ns的对齐
	fmt.Printf("%-38s %-8s %-5s %-10s %s\n", "RUN_ID", "VARIANT", "RUNS", "STATUS", "DATASETS")
	for _, run := range runs {
		fmt.Printf("%-38s %-8s %-5d %-10s %s\n", run.RunId, run.Variant, run.Runs,
			run.Status, strings.Join(run.Datasets, ","))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyMysqlHost, FlagMysqlHost, "",
		"运行记录数据库地址")
}
