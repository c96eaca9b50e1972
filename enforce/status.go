package enforce

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/focusplug/focusplug/internal/osutil"
)

// Status is the enforcement state recorded in the status file.
type Status struct {
	UpdatedAt time.Time `json:"updated_at"`
	Domains   []string  `json:"domains"`
	Blocking  bool      `json:"blocking"`
}

// StatusFile records the enforced block list in a JSON file so that
// `focusplug status` can report it from another process.
type StatusFile struct {
	Path string
	Now  func() time.Time
}

func (s *StatusFile) ApplyBlockList(domains []string) error {
	return s.write(Status{
		Blocking: true,
		Domains:  domains,
	})
}

func (s *StatusFile) ClearBlockList() error {
	return s.write(Status{})
}

func (s *StatusFile) write(st Status) (err error) {
	if s.Now != nil {
		st.UpdatedAt = s.Now()
	} else {
		st.UpdatedAt = time.Now()
	}

	if st.Domains == nil {
		st.Domains = []string{}
	}

	err = os.MkdirAll(filepath.Dir(s.Path), osutil.DirPermission)
	if err != nil {
		return err
	}

	tmp := s.Path + ".tmp"

	statusFile, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, osutil.FilePermission)
	if err != nil {
		return err
	}

	defer func() {
		ferr := statusFile.Close()
		if ferr != nil && err == nil {
			err = ferr
		}

		if err == nil {
			err = os.Rename(tmp, s.Path)
		}
	}()

	b, err := json.Marshal(st)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(statusFile)

	_, err = writer.Write(b)
	if err != nil {
		return err
	}

	return writer.Flush()
}

// ReadStatus reads the status file at path. A missing file reports an
// inactive blocker.
func ReadStatus(path string) (Status, error) {
	var st Status

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return st, nil
	}

	if err != nil {
		return st, err
	}

	err = json.Unmarshal(b, &st)

	return st, err
}
