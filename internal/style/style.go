package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/heroku/color"
)

// Symbol formats a value as a quoted identifier for log and error messages.
var Symbol = func(value string) string {
	if color.Enabled() {
		return Key(value)
	}

	return "'" + value + "'"
}

// SymbolF is Symbol over a format string.
var SymbolF = func(format string, a ...interface{}) string {
	if color.Enabled() {
		return Key(format, a...)
	}

	return "'" + fmt.Sprintf(format, a...) + "'"
}

// Map formats a string map as sorted key=value pairs wrapped in a Symbol.
var Map = func(values map[string]string, prefix, separator string) string {
	result := ""

	var keys []string
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		result += fmt.Sprintf("%s%s=%s%s", prefix, key, values[key], separator)
	}

	return Symbol(strings.TrimSuffix(result, separator))
}

var Key = color.HiBlueString

var Tip = color.New(color.FgGreen, color.Bold).SprintfFunc()

var Warn = color.New(color.FgYellow, color.Bold).SprintfFunc()

var Error = color.New(color.FgRed, color.Bold).SprintfFunc()

var Step = func(format string, a ...interface{}) string {
	return color.CyanString("===> "+format, a...)
}
