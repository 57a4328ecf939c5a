package egdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

const (
	DefaultMaxPieces = 8
	DefaultBuffers   = 5000
)

var (
	ErrInvalidConfig = errors.New("invalid database config")
)

// Config locates the database files. It is usually read from a single
// db.ini line: <dbfile> <idxfile> <maxpieces> <buffers>.
type Config struct {
	DatabaseFile string
	IndexFile    string
	MaxPieces    int
	Buffers      int
	Logger       zerolog.Logger
}

func ParseConfig(r io.Reader) (Config, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return Config{}, fmt.Errorf("%w: expected 4 fields, got %d", ErrInvalidConfig, len(fields))
		}
		maxPieces, err := strconv.Atoi(fields[2])
		if err != nil || maxPieces < 2 {
			return Config{}, fmt.Errorf("%w: invalid piece count '%s'", ErrInvalidConfig, fields[2])
		}
		buffers, err := strconv.Atoi(fields[3])
		if err != nil || buffers < 1 {
			return Config{}, fmt.Errorf("%w: invalid buffer count '%s'", ErrInvalidConfig, fields[3])
		}
		return Config{
			DatabaseFile: fields[0],
			IndexFile:    fields[1],
			MaxPieces:    maxPieces,
			Buffers:      buffers,
			Logger:       zerolog.Nop(),
		}, nil
	}
	if err := scanner.Err(); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return Config{}, fmt.Errorf("%w: empty config", ErrInvalidConfig)
}

// LoadConfig reads a db.ini file. Relative file names are resolved against
// the directory holding the config.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return Config{}, err
	}
	dir := filepath.Dir(path)
	if !filepath.IsAbs(cfg.DatabaseFile) {
		cfg.DatabaseFile = filepath.Join(dir, cfg.DatabaseFile)
	}
	if !filepath.IsAbs(cfg.IndexFile) {
		cfg.IndexFile = filepath.Join(dir, cfg.IndexFile)
	}
	return cfg, nil
}
