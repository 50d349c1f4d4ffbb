package containify

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/NoahWhiteson/Containify/pkg/logger"
	"github.com/NoahWhiteson/Containify/pkg/types"
)

// The metadata store owns every read and write of metadata.json. There is no
// locking around read-modify-write sequences: this is a single-operator
// local tool and concurrent invocations against the same name can race.
// Keeping all mutations behind UpdateRecord means advisory locking can be
// added here later without touching backend code.

// newRecord builds a fresh record for the given name with derived paths and
// the current schema version.
func (c *Containify) newRecord(name string, backend types.Backend, limits types.Limits) types.Record {
	return types.Record{
		SchemaVersion: types.CurrentSchemaVersion,
		Name:          name,
		Backend:       backend,
		Limits:        limits,
		Paths: types.Paths{
			Root:         c.Options.RootDir,
			ContainerDir: c.ContainerDir(name),
			WorkspaceDir: c.WorkspaceDir(name),
		},
		CreatedAt: time.Now().UTC(),
	}
}

// ReadRecord loads the metadata record for a container. It returns
// ErrNotFound when no metadata file exists.
func (c *Containify) ReadRecord(name string) (rec types.Record, err error) {
	data, err := os.ReadFile(c.MetadataPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return rec, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return
	}

	err = json.Unmarshal(data, &rec)
	if err != nil {
		err = fmt.Errorf("decoding metadata for %s: %w", name, err)
	}
	return
}

// WriteRecord persists the record with a full-file rewrite. The write goes
// through a temp file plus rename so a crash never leaves a truncated
// metadata.json behind.
func (c *Containify) WriteRecord(name string, rec types.Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(c.ContainerDir(name), ".metadata-*.json")
	if err != nil {
		return err
	}
	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.MetadataPath(name))
}

// UpdateRecord applies mutate to the stored record and writes it back. It is
// the single read-modify-write entry point for limit edits, startup command
// edits and recorded pids.
func (c *Containify) UpdateRecord(name string, mutate func(*types.Record)) (rec types.Record, err error) {
	rec, err = c.ReadRecord(name)
	if err != nil {
		return
	}
	mutate(&rec)
	err = c.WriteRecord(name, rec)
	return
}

// ListRecords scans the containers directory and returns every decodable
// record. Unreadable or corrupt entries are skipped, not fatal; iteration
// order is the filesystem order and callers must not depend on it.
func (c *Containify) ListRecords() (records []types.Record, err error) {
	entries, err := os.ReadDir(c.Options.ContainersPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rec, readErr := c.ReadRecord(entry.Name())
		if readErr != nil {
			logger.Debugf("skipping %s: %v", entry.Name(), readErr)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// createContainerDir validates the name and claims the container directory,
// creating the workspace beneath it. The directory is the mutual-exclusion
// point: a name whose directory already exists cannot be created again,
// regardless of which backend is requested.
func (c *Containify) createContainerDir(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if _, err := os.Stat(c.ContainerDir(name)); err == nil {
		return fmt.Errorf("%w: %s at %s", ErrAlreadyExists, name, c.ContainerDir(name))
	}
	return os.MkdirAll(c.WorkspaceDir(name), 0755)
}

// rollbackContainerDir removes a partially provisioned container directory.
// Creation is not transactional with backend provisioning, so any failure
// after the directory was claimed rolls it back to avoid leaving a
// directory with no usable record behind.
func (c *Containify) rollbackContainerDir(name string) {
	os.RemoveAll(c.ContainerDir(name))
}

// RenameContainer moves a container directory to a new name and rewrites
// the record's name and derived paths. The target name must be valid and
// unclaimed.
func (c *Containify) RenameContainer(oldName, newName string) (rec types.Record, err error) {
	if err = ValidateName(newName); err != nil {
		return
	}

	rec, err = c.ReadRecord(oldName)
	if err != nil {
		return
	}
	if _, statErr := os.Stat(c.ContainerDir(newName)); statErr == nil {
		err = fmt.Errorf("%w: %s", ErrAlreadyExists, newName)
		return
	}

	err = os.Rename(c.ContainerDir(oldName), c.ContainerDir(newName))
	if err != nil {
		return
	}

	rec.Name = newName
	rec.Paths = types.Paths{
		Root:         c.Options.RootDir,
		ContainerDir: c.ContainerDir(newName),
		WorkspaceDir: c.WorkspaceDir(newName),
	}
	err = c.WriteRecord(newName, rec)
	return
}
