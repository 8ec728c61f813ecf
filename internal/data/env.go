package data

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
)

const (
	// EnvObjectName is the name of the entity holding environment file values.
	EnvObjectName = "_ENV"
	// EnvObjectType is the type of the environment entity.
	EnvObjectType = "environment"
)

// ReadEnvFile reads KEY=VALUE lines from path. A missing file yields a nil map
// and no error.
func ReadEnvFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseEnv(f)
}

// ParseEnv parses line-delimited KEY=VALUE entries. Keys are trimmed and
// lowercased, values trimmed. Lines without exactly one '=' are skipped.
// Lines may be of any length.
func ParseEnv(r io.Reader) (map[string]string, error) {
	env := make(map[string]string)
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		params := strings.Split(strings.TrimRight(line, "\r\n"), "=")
		if len(params) == 2 {
			env[strings.ToLower(strings.TrimSpace(params[0]))] = strings.TrimSpace(params[1])
		}
		if err != nil {
			break
		}
	}
	return env, nil
}

// NewEnvObject wraps environment values as the _ENV entity.
func NewEnvObject(env map[string]string) *EntityDataObject {
	fields := make(map[string]Value, len(env))
	for k, v := range env {
		fields[k] = Scalar(v)
	}
	return NewEntityDataObject(EnvObjectName, EnvObjectType, fields, nil)
}
