/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	applog "vecdraw/internal/log"
)

// BackupSuffix is appended to a scene path for the copy kept by Save.
const BackupSuffix = ".bak"

// Load reads a scene file. If the file cannot be read or decoded, the
// backup written by the previous Save is tried before giving up.
func Load(path string) (*Scene, error) {
	s, err := loadFile(path)
	if err == nil {
		return s, nil
	}
	bs, berr := loadFile(path + BackupSuffix)
	if berr != nil {
		return nil, fmt.Errorf("load scene: %w; backup attempt: %v", err, berr)
	}
	applog.WithComponent("scene").Warn("scene restored from backup", "path", path, "err", err)
	return bs, nil
}

func loadFile(path string) (*Scene, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(b)
}

// Save writes s to path, as YAML when the extension is .yaml or .yml and
// as JSON otherwise. The previous file is copied to path+BackupSuffix and
// the new content replaces it through a synced temp file and a rename.
func Save(path string, s *Scene) error {
	if s == nil {
		return errors.New("nil scene")
	}
	if strings.TrimSpace(path) == "" {
		return errors.New("scene path is required")
	}
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = EncodeYAML(s)
	default:
		data, err = EncodeJSON(s)
	}
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create scene dir: %w", err)
	}
	if _, statErr := os.Stat(path); statErr == nil {
		if cerr := copyFile(path, path+BackupSuffix); cerr != nil {
			return fmt.Errorf("backup current scene: %w", cerr)
		}
	}

	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", filepath.Base(path), os.Getpid(), rand.Int()))
	if werr := writeFileSync(temp, data); werr != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("write temp scene: %w", werr)
	}
	if rerr := os.Rename(temp, path); rerr != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace scene: %w", rerr)
	}
	return nil
}

func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}

func copyFile(src, dst string) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sf.Close()
	df, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := df.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := io.Copy(df, sf); err != nil {
		return err
	}
	return df.Sync()
}
