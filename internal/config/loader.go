package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/srvm-cli/srvm/internal/errors"
	"github.com/srvm-cli/srvm/internal/logger"
	"gopkg.in/yaml.v3"
)

// legacyDefaultKey is a misspelling accepted by early srvm releases.
const legacyDefaultKey = "default_evironment"

// serviceParsers maps service kind names to their parsers, in lookup order.
var serviceParsers = []struct {
	kind  string
	parse func(node *yaml.Node, path string) (Service, error)
}{
	{ServiceSSH, parseSSH},
}

// Load reads and parses the configuration file at path.
//
// An unreadable file yields an ErrConfigIO error, malformed YAML an
// ErrConfigSyntax error and a schema violation an ErrConfigInvalid error
// wrapping a *ValidationError. Nothing is returned alongside an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		suggestion := "Check the file permissions"
		if os.IsNotExist(err) {
			suggestion = fmt.Sprintf("Create %s or point to a config file with --config", DefaultConfigFile)
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfigIO,
			"Could not read config file "+path,
			suggestion)
	}

	cfg, err := Parse(data)
	if err != nil {
		var srvmErr *errors.Error
		if errors.As(err, &srvmErr) {
			srvmErr.Suggestion = "Fix " + path + " and try again"
		}
		return nil, err
	}

	logger.Default().Debug("loaded %d environments from %s", len(cfg.Environments), path)
	return cfg, nil
}

// Parse parses a srvm.yaml document. The first schema violation aborts the
// whole parse.
func Parse(data []byte) (*Config, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfigSyntax,
			"Could not parse config file",
			"Check the YAML syntax")
	}

	cfg, verr := parseDocument(&root)
	if verr != nil {
		return nil, errors.WrapWithCode(verr, errors.ErrConfigInvalid,
			"Could not parse config file",
			"Check the config file against the documented schema")
	}
	return cfg, nil
}

func parseDocument(root *yaml.Node) (*Config, error) {
	doc := root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	if !isMapping(doc) {
		return nil, invalid("", "configuration file must be a mapping")
	}

	cfg := &Config{Environments: make(map[string]*Environment)}

	defaultNode := findOptionalValue(doc, "default_environment")
	if defaultNode == nil {
		defaultNode = findOptionalValue(doc, legacyDefaultKey)
	}
	if defaultNode != nil {
		if !isString(defaultNode) {
			return nil, invalid("default_environment", "default_environment must be a string")
		}
		cfg.DefaultEnvironment = defaultNode.Value
	}

	envsNode := findMapValue(doc, "environments")
	if envsNode == nil {
		return cfg, nil
	}
	if !isMapping(envsNode) {
		return nil, invalid("environments", "environments must be a mapping")
	}

	for _, e := range mapEntries(envsNode) {
		if !isString(e.Key) {
			return nil, invalid("environments", "environment names must be strings")
		}
		path := joinPath("environments", e.Key.Value)
		if !isMapping(e.Value) {
			return nil, invalid(path, "an environment definition must be a mapping")
		}
		env, err := parseEnvironment(e.Value, path)
		if err != nil {
			return nil, err
		}
		cfg.Environments[e.Key.Value] = env
	}

	return cfg, nil
}

func parseEnvironment(node *yaml.Node, path string) (*Environment, error) {
	servicePath := joinPath(path, "service")
	serviceNode := findMapValue(node, "service")
	if !isMapping(serviceNode) {
		return nil, invalid(servicePath, "a service definition must be a mapping")
	}
	service, err := parseService(serviceNode, servicePath)
	if err != nil {
		return nil, err
	}

	env := &Environment{
		Service: service,
		Tasks:   make(map[string]Task),
	}

	tasksPath := joinPath(path, "tasks")
	tasksNode := findMapValue(node, "tasks")
	if tasksNode == nil {
		return env, nil
	}
	if !isMapping(tasksNode) {
		return nil, invalid(tasksPath, "tasks must be a mapping")
	}

	for _, e := range mapEntries(tasksNode) {
		if !isString(e.Key) {
			return nil, invalid(tasksPath, "task names must be strings")
		}
		task, err := parseTask(e.Value, joinPath(tasksPath, e.Key.Value))
		if err != nil {
			return nil, err
		}
		env.Tasks[e.Key.Value] = task
	}

	return env, nil
}

func parseService(node *yaml.Node, path string) (Service, error) {
	for _, p := range serviceParsers {
		if value := findMapValue(node, p.kind); value != nil {
			return p.parse(value, joinPath(path, p.kind))
		}
	}

	kinds := make([]string, len(serviceParsers))
	for i, p := range serviceParsers {
		kinds[i] = p.kind
	}
	return nil, invalid(path, "invalid service type (expected one of: "+strings.Join(kinds, ", ")+")")
}

func parseSSH(node *yaml.Node, path string) (Service, error) {
	if isString(node) {
		return SSHService{Host: node.Value}, nil
	}
	if !isMapping(node) {
		return nil, invalid(path, "SSH configuration must be a string or a mapping")
	}

	hostNode := findMapValue(node, "host")
	if !isString(hostNode) {
		return nil, invalid(joinPath(path, "host"), "SSH host must be a string")
	}
	svc := SSHService{Host: hostNode.Value}

	if portNode := findOptionalValue(node, "port"); portNode != nil {
		var port int64
		if portNode.ShortTag() != "!!int" || portNode.Decode(&port) != nil || port < 1 || port > 65535 {
			return nil, invalid(joinPath(path, "port"), "SSH port must be an integer between 1 and 65535")
		}
		svc.Port = uint16(port)
	}

	if keyNode := findOptionalValue(node, "key_file"); keyNode != nil {
		if !isString(keyNode) {
			return nil, invalid(joinPath(path, "key_file"), "SSH key_file must be a string")
		}
		svc.KeyFile = strings.TrimSpace(keyNode.Value)
	}

	if userNode := findOptionalValue(node, "user"); userNode != nil {
		if !isString(userNode) {
			return nil, invalid(joinPath(path, "user"), "SSH user must be a string")
		}
		svc.User = userNode.Value
	}

	return svc, nil
}

func parseTask(node *yaml.Node, path string) (Task, error) {
	if isString(node) {
		return CommandTask{Command: node.Value}, nil
	}
	if !isMapping(node) {
		return nil, invalid(path, "a task definition must be a string or a mapping")
	}

	typeNode := findMapValue(node, "type")
	if !isString(typeNode) {
		return nil, invalid(path, "a task definition must have a type property")
	}

	switch typeNode.Value {
	case TaskCommand:
		commandNode := findMapValue(node, "command")
		if !isString(commandNode) {
			return nil, invalid(joinPath(path, "command"), "the command property must be a string")
		}
		return CommandTask{Command: commandNode.Value}, nil
	default:
		return nil, invalid(joinPath(path, "type"), fmt.Sprintf("invalid type %q", typeNode.Value))
	}
}
