package varnish

import (
	"strconv"
	"strings"
)

// DefaultVCLPrefix is used when generating configuration names for
// load operations that did not name one.
const DefaultVCLPrefix = "load"

// VCL is one named configuration known to a server.
type VCL struct {
	Name   string
	Active bool
}

// VCLList holds the configurations of a server in the order the
// server listed them.
type VCLList []VCL

// Active returns the name of the first active configuration.
func (l VCLList) Active() (string, bool) {
	for _, vcl := range l {
		if vcl.Active {
			return vcl.Name, true
		}
	}

	return "", false
}

// NextName generates a configuration name that is not taken yet: the
// prefix followed by one more than the highest numeric suffix among
// the existing names with that prefix. Names whose suffix is not
// numeric do not count. An empty prefix means DefaultVCLPrefix.
func (l VCLList) NextName(prefix string) string {
	if prefix == "" {
		prefix = DefaultVCLPrefix
	}

	max := 0
	for _, vcl := range l {
		if !strings.HasPrefix(vcl.Name, prefix) {
			continue
		}

		n, err := strconv.Atoi(vcl.Name[len(prefix):])
		if err != nil || n < max {
			continue
		}
		max = n
	}

	return prefix + strconv.Itoa(max+1)
}

// vclQuoter escapes a configuration source for embedding as a double
// quoted vcl.inline argument.
var vclQuoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// ListVCLs fetches the configurations loaded on the server.
func (a *Admin) ListVCLs() (VCLList, error) {
	body, err := a.Execute("vcl.list")
	if err != nil {
		return nil, err
	}

	return parseVCLList(body), nil
}

// parseVCLList decodes a vcl.list body. Every non blank line describes
// one configuration; the first column is its state, the last its name.
func parseVCLList(body string) VCLList {
	var list VCLList

	for _, line := range strings.Split(body, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		list = append(list, VCL{
			Name:   fields[len(fields)-1],
			Active: fields[0] == "active",
		})
	}

	return list
}

// GetVCL returns the source of the named configuration.
func (a *Admin) GetVCL(name string) (string, error) {
	return a.Execute("vcl.show " + name)
}

// ActiveVCL returns the source of the active configuration. The
// boolean is false when no configuration is active, which happens on
// instances that never loaded one.
func (a *Admin) ActiveVCL() (string, bool, error) {
	list, err := a.ListVCLs()
	if err != nil {
		return "", false, err
	}

	name, ok := list.Active()
	if !ok {
		return "", false, nil
	}

	source, err := a.GetVCL(name)
	if err != nil {
		return "", false, err
	}

	return source, true, nil
}

// LoadVCLFromFile loads a configuration from a file path readable by
// the server itself. When name is empty a fresh one is generated. The
// name used is returned, so callers can activate it later.
func (a *Admin) LoadVCLFromFile(path, name string) (string, error) {
	name, err := a.ensureVCLName(name)
	if err != nil {
		return "", err
	}

	if _, err := a.Execute("vcl.load " + name + " " + path); err != nil {
		return "", err
	}

	return name, nil
}

// LoadVCLFromConfiguration loads a configuration from source text held
// by the caller, for servers whose filesystem is out of reach. When
// name is empty a fresh one is generated. The name used is returned.
func (a *Admin) LoadVCLFromConfiguration(configuration, name string) (string, error) {
	name, err := a.ensureVCLName(name)
	if err != nil {
		return "", err
	}

	command := `vcl.inline ` + name + ` "` + vclQuoter.Replace(configuration) + `"`
	if _, err := a.Execute(command); err != nil {
		return "", err
	}

	return name, nil
}

// UseVCL activates the named configuration.
func (a *Admin) UseVCL(name string) error {
	_, err := a.Execute("vcl.use " + name)
	return err
}

// LoadAndUseVCLFromFile loads a configuration from a file and
// activates it in one go, returning the name used.
func (a *Admin) LoadAndUseVCLFromFile(path, name string) (string, error) {
	name, err := a.LoadVCLFromFile(path, name)
	if err != nil {
		return "", err
	}

	if err := a.UseVCL(name); err != nil {
		return "", err
	}

	return name, nil
}

// DiscardVCL unloads the named configuration. The active configuration
// cannot be discarded; the server answers that with an error status.
func (a *Admin) DiscardVCL(name string) error {
	_, err := a.Execute("vcl.discard " + name)
	return err
}

// ensureVCLName generates a configuration name when none was given.
func (a *Admin) ensureVCLName(name string) (string, error) {
	if name != "" {
		return name, nil
	}

	list, err := a.ListVCLs()
	if err != nil {
		return "", err
	}

	return list.NextName(DefaultVCLPrefix), nil
}
