package erm

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/ermview/pkg/erm/decode"
	"github.com/matzehuels/ermview/pkg/erm/dto"
	"github.com/matzehuels/ermview/pkg/erm/entity"
	"github.com/matzehuels/ermview/pkg/erm/xmltree"
	ermerrors "github.com/matzehuels/ermview/pkg/errors"
	"github.com/matzehuels/ermview/pkg/observability"
)

// Loader reads diagram files and logs each load.
type Loader struct {
	logger *log.Logger
}

// NewLoader returns a Loader that reports to logger. A nil logger discards
// all output.
func NewLoader(logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{logger: logger}
}

var quiet = NewLoader(nil)

// Open reads the diagram at path and returns its canonical model.
func Open(path string) (*entity.Diagram, error) {
	return quiet.Load(path)
}

// OpenDTO is [Open] followed by [dto.FromEntity].
func OpenDTO(path string) (*dto.Diagram, error) {
	d, err := Open(path)
	if err != nil {
		return nil, err
	}
	return dto.FromEntity(d), nil
}

// Report describes one completed load.
type Report struct {
	Diagram  *entity.Diagram
	Revision decode.Revision
	Bytes    int
	Elapsed  time.Duration
}

// Load reads the diagram at path. The file is closed before Load returns on
// every path.
func (l *Loader) Load(path string) (*entity.Diagram, error) {
	r, err := l.Inspect(path)
	if err != nil {
		return nil, err
	}
	return r.Diagram, nil
}

// Inspect is [Loader.Load] that also reports the detected file revision
// and load statistics.
func (l *Loader) Inspect(path string) (*Report, error) {
	logger := l.logger.With("load", uuid.NewString(), "path", path)
	hooks := observability.Load()
	start := time.Now()
	hooks.OnLoadStart(path)

	data, err := readFile(path)
	if err != nil {
		logger.Debug("read failed", "err", err)
		hooks.OnLoadComplete(path, "", 0, time.Since(start), err)
		return nil, err
	}

	root, err := xmltree.Parse(bytes.NewReader(data))
	if err != nil {
		logger.Debug("parse failed", "err", err)
		hooks.OnLoadComplete(path, "", 0, time.Since(start), err)
		return nil, err
	}
	rev := decode.DetectRevision(root)

	d, err := decode.DecodeElement(root)
	if err != nil {
		logger.Debug("decode failed", "revision", rev, "err", err)
		hooks.OnLoadComplete(path, rev.String(), 0, time.Since(start), err)
		return nil, err
	}

	r := &Report{
		Diagram:  d,
		Revision: rev,
		Bytes:    len(data),
		Elapsed:  time.Since(start),
	}
	logger.Debug("loaded diagram",
		"revision", rev,
		"database", d.DiagramSettings.Database,
		"tables", len(d.DiagramWalkers.Tables),
		"groups", len(d.ColumnGroups.Groups),
		"bytes", r.Bytes,
		"elapsed", r.Elapsed.Round(time.Microsecond),
	)
	hooks.OnLoadComplete(path, rev.String(), len(d.DiagramWalkers.Tables), r.Elapsed, nil)
	return r, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ermerrors.Wrap(ermerrors.ErrCodeFileNotFound, err, "open diagram")
		}
		return nil, ermerrors.Wrap(ermerrors.ErrCodeIO, err, "open diagram")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, ermerrors.Wrap(ermerrors.ErrCodeIO, err, "read diagram")
	}
	return data, nil
}

// ErrorMessage is the opaque failure returned by [LoadDiagram]. Hosts
// display it; they do not branch on it.
type ErrorMessage string

func (e ErrorMessage) Error() string { return string(e) }

// LoadDiagram is the host-shell entry point: it opens filename and projects
// the result to its transport shape. Any failure comes back as an
// [ErrorMessage].
func LoadDiagram(filename string) (*dto.Diagram, error) {
	d, err := OpenDTO(filename)
	if err != nil {
		return nil, ErrorMessage(ermerrors.UserMessage(err))
	}
	return d, nil
}
