package core

import (
	"fmt"
	"strings"

	"github.com/fracpete/goweka/pkg/java"
)

// SplitOptions 把命令行字符串切分为选项数组。双引号与单引号内的空白
// 不作为分隔符，双引号内支持反斜杠转义。引号不闭合时报错。
func SplitOptions(cmdline string) ([]string, error) {
	options := make([]string, 0)
	var current strings.Builder
	inToken := false
	quote := byte(0)

	for i := 0; i < len(cmdline); i++ {
		c := cmdline[i]
		switch {
		case quote != 0:
			if c == '\\' && quote == '"' && i+1 < len(cmdline) {
				i++
				current.WriteByte(cmdline[i])
			} else if c == quote {
				quote = 0
			} else {
				current.WriteByte(c)
			}
		case c == '"' || c == '\'':
			quote = c
			inToken = true
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if inToken {
				options = append(options, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteByte(c)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("命令行中的引号不闭合: %s", cmdline)
	}
	if inToken {
		options = append(options, current.String())
	}
	return options, nil
}

// JoinOptions 把选项数组拼接回命令行字符串。含空白、引号或为空的选项加双引号，
// 双引号与反斜杠转义。
func JoinOptions(options []string) string {
	quoted := make([]string, len(options))
	for i, option := range options {
		if option == "" || strings.ContainsAny(option, " \t\n\r\"'") {
			escaped := strings.ReplaceAll(option, "\\", "\\\\")
			escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
			quoted[i] = "\"" + escaped + "\""
		} else {
			quoted[i] = option
		}
	}
	return strings.Join(quoted, " ")
}

// FromCommandline 按"类名 选项..."形式的命令行创建并配置对象。
func FromCommandline(env java.Env, cmdline string) (*OptionHandler, error) {
	options, err := SplitOptions(cmdline)
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("命令行为空")
	}

	jobject, err := NewInstance(env, options[0])
	if err != nil {
		return nil, err
	}
	handler, err := NewOptionHandler(env, jobject)
	if err != nil {
		return nil, err
	}
	if len(options) > 1 {
		if err := handler.SetOptions(options[1:]); err != nil {
			return nil, err
		}
	}
	return handler, nil
}
