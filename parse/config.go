// Package parse reads the small "[header]" + "name = value" config files used
// to override gphist's defaults.
//
//	# Comments start with a pound sign.
//	[cosmology]
//	H100 = 0.7
//	MNu = 0, 0, 0.06
package parse

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrSyntax is wrapped by every error caused by the contents of a config
// file, as opposed to errors reading it.
var ErrSyntax = errors.New("parse: invalid config file")

/////////////////////
// Conversion Code //
/////////////////////

type varType int

const (
	intVar varType = iota
	floatVar
	floatsVar
	stringVar
	boolVar
)

func (v varType) String() string {
	switch v {
	case intVar:
		return "int"
	case floatVar:
		return "float"
	case floatsVar:
		return "float list"
	case stringVar:
		return "string"
	case boolVar:
		return "bool"
	}
	panic("Impossible")
}

type conversionFunc func(string) bool

// ConfigVars is the set of variables a config file with a given header may
// assign to. Each variable is bound to a pointer which receives its value.
type ConfigVars struct {
	name            string
	varNames        []string
	varTypes        []varType
	conversionFuncs []conversionFunc
	set             []bool
}

func intConv(ptr *int64) conversionFunc {
	return func(s string) bool {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return false
		}
		*ptr = i
		return true
	}
}

func floatConv(ptr *float64) conversionFunc {
	return func(s string) bool {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return false
		}
		*ptr = f
		return true
	}
}

func stringConv(ptr *string) conversionFunc {
	return func(s string) bool {
		*ptr = strings.Trim(s, " ")
		return true
	}
}

func boolConv(ptr *bool) conversionFunc {
	return func(s string) bool {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return false
		}
		*ptr = b
		return true
	}
}

func strToList(a string) []string {
	strs := strings.Split(a, ",")
	for i := range strs {
		strs[i] = strings.Trim(strs[i], " ")
	}
	return strs
}

func floatsConv(ptr *[]float64) conversionFunc {
	return func(s string) bool {
		toks := strToList(s)
		out := make([]float64, 0, len(toks))
		for j := range toks {
			f, err := strconv.ParseFloat(toks[j], 64)
			if err != nil {
				return false
			}
			out = append(out, f)
		}
		*ptr = out
		return true
	}
}

// NewConfigVars creates an empty variable set for files with the header
// [name].
func NewConfigVars(name string) *ConfigVars {
	return &ConfigVars{name: name}
}

func (vars *ConfigVars) add(name string, t varType, f conversionFunc) {
	vars.varNames = append(vars.varNames, strings.ToLower(name))
	vars.varTypes = append(vars.varTypes, t)
	vars.conversionFuncs = append(vars.conversionFuncs, f)
	vars.set = append(vars.set, false)
}

func (vars *ConfigVars) Int(ptr *int64, name string, value int64) {
	*ptr = value
	vars.add(name, intVar, intConv(ptr))
}

func (vars *ConfigVars) Float(ptr *float64, name string, value float64) {
	*ptr = value
	vars.add(name, floatVar, floatConv(ptr))
}

func (vars *ConfigVars) Floats(ptr *[]float64, name string, value []float64) {
	*ptr = value
	vars.add(name, floatsVar, floatsConv(ptr))
}

func (vars *ConfigVars) String(ptr *string, name string, value string) {
	*ptr = value
	vars.add(name, stringVar, stringConv(ptr))
}

func (vars *ConfigVars) Bool(ptr *bool, name string, value bool) {
	*ptr = value
	vars.add(name, boolVar, boolConv(ptr))
}

// IsSet reports whether the most recent read assigned to the named variable.
func (vars *ConfigVars) IsSet(name string) bool {
	name = strings.ToLower(name)
	for i := range vars.varNames {
		if vars.varNames[i] == name {
			return vars.set[i]
		}
	}
	return false
}

//////////////////
// Parsing Code //
//////////////////

// ReadConfig reads the config file fname into vars.
func ReadConfig(fname string, vars *ConfigVars) error {
	bs, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	return ReadConfigString(fname, string(bs), vars)
}

// ReadConfigString parses the text of a config file into vars. source is only
// used in error messages.
func ReadConfigString(source, text string, vars *ConfigVars) error {
	for i := range vars.set {
		vars.set[i] = false
	}

	lines, lineNums := removeComments(strings.Split(text, "\n"))
	for i := range lineNums {
		lineNums[i]++
	}

	if len(lines) == 0 || lines[0] != fmt.Sprintf("[%s]", vars.name) {
		return fmt.Errorf(
			"%w: I expected the config file %s to have the header "+
				"[%s] at the top, but didn't find it.",
			ErrSyntax, source, vars.name,
		)
	}
	lines, lineNums = lines[1:], lineNums[1:]

	names, vals, errLine := associationList(lines)
	if errLine != -1 {
		return fmt.Errorf(
			"%w: I could not parse line %d of the config file %s because "+
				"it did not take the form of a variable assignment.",
			ErrSyntax, lineNums[errLine], source,
		)
	}

	idx := make([]int, len(names))
	for i := range names {
		idx[i] = vars.index(names[i])
		if idx[i] == -1 {
			return fmt.Errorf(
				"%w: Line %d of the config file %s assigns a value to the "+
					"variable '%s', but config files of type %s don't have "+
					"that variable.",
				ErrSyntax, lineNums[i], source, names[i], vars.name,
			)
		}
	}

	if i, j := checkDuplicateNames(names); i != -1 {
		return fmt.Errorf(
			"%w: Lines %d and %d of the config file %s both assign a value "+
				"to the variable '%s'.",
			ErrSyntax, lineNums[i], lineNums[j], source, names[i],
		)
	}

	for i := range names {
		j := idx[i]
		if !vars.conversionFuncs[j](vals[i]) {
			typeName := vars.varTypes[j].String()
			a := "a"
			if typeName[0] == 'i' {
				a = "an"
			}
			return fmt.Errorf(
				"%w: I could not parse line %d of the config file %s because "+
					"'%s' expects values of type %s and '%s' cannot be "+
					"converted to %s %s.",
				ErrSyntax, lineNums[i], source, vars.varNames[j], typeName,
				vals[i], a, typeName,
			)
		}
		vars.set[j] = true
	}

	return nil
}

func (vars *ConfigVars) index(name string) int {
	for j := range vars.varNames {
		if vars.varNames[j] == name {
			return j
		}
	}
	return -1
}

func removeComments(lines []string) ([]string, []int) {
	out, lineNums := []string{}, []int{}
	for i, line := range lines {
		if comment := strings.Index(line, "#"); comment != -1 {
			line = line[:comment]
		}
		line = strings.Trim(line, " \t\r")
		if len(line) == 0 {
			continue
		}
		out = append(out, line)
		lineNums = append(lineNums, i)
	}
	return out, lineNums
}

func associationList(lines []string) ([]string, []string, int) {
	names, vals := []string{}, []string{}
	for i := range lines {
		eq := strings.Index(lines[i], "=")
		if eq == -1 {
			return nil, nil, i
		}
		name := strings.ToLower(strings.Trim(lines[i][:eq], " \t"))
		if len(name) == 0 {
			return nil, nil, i
		}
		names = append(names, name)
		vals = append(vals, strings.Trim(lines[i][eq+1:], " \t"))
	}
	return names, vals, -1
}

func checkDuplicateNames(names []string) (int, int) {
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			if names[i] == names[j] {
				return i, j
			}
		}
	}
	return -1, -1
}
