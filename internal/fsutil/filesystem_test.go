package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_CreateAndRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plots", "coverage.png")

	var fsys FileSystem = OSFileSystem{}
	if err := EnsureParent(fsys, path); err != nil {
		t.Fatalf("EnsureParent: %v", err)
	}

	w, err := fsys.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := w.Write([]byte("png")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "png" {
		t.Errorf("expected 'png', got %q", data)
	}

	info, err := fsys.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() != 3 {
		t.Errorf("expected size 3, got %d", info.Size())
	}
}

func TestOSFileSystem_ReadMissing(t *testing.T) {
	_, err := OSFileSystem{}.ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestMemoryFileSystem_CreateRequiresParent(t *testing.T) {
	m := NewMemoryFileSystem()

	if _, err := m.Create("out/coverage.svg"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist without parent dir, got %v", err)
	}

	if err := EnsureParent(m, "out/coverage.svg"); err != nil {
		t.Fatalf("EnsureParent: %v", err)
	}
	w, err := m.Create("out/coverage.svg")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	w.Write([]byte("<svg/>"))

	// Not visible until closed.
	if data, _ := m.ReadFile("out/coverage.svg"); len(data) != 0 {
		t.Errorf("expected empty file before Close, got %q", data)
	}
	w.Close()

	data, err := m.ReadFile("out/./coverage.svg")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("unexpected contents %q", data)
	}
}

func TestMemoryFileSystem_StatAndFiles(t *testing.T) {
	m := NewMemoryFileSystem()
	m.WriteFile("scene.json", []byte("{}"), 0644)
	m.MkdirAll("a/b", 0755)

	info, err := m.Stat("scene.json")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() != 2 || info.IsDir() {
		t.Errorf("unexpected info: size=%d dir=%v", info.Size(), info.IsDir())
	}

	info, err = m.Stat("a")
	if err != nil {
		t.Fatalf("Stat dir: %v", err)
	}
	if !info.IsDir() || info.Mode()&fs.ModeDir == 0 {
		t.Error("expected a to be a directory")
	}

	if _, err := m.Stat("nope"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}

	files := m.Files()
	if len(files) != 1 || files[0] != "scene.json" {
		t.Errorf("unexpected files %v", files)
	}
}

func TestMemoryFileSystem_ReadReturnsCopy(t *testing.T) {
	m := NewMemoryFileSystem()
	m.WriteFile("x", []byte("abc"), 0644)

	data, _ := m.ReadFile("x")
	data[0] = 'z'

	again, _ := m.ReadFile("x")
	if string(again) != "abc" {
		t.Errorf("stored data was mutated: %q", again)
	}
}

func TestWriteFile(t *testing.T) {
	filesystems := map[string]FileSystem{
		"os":     OSFileSystem{},
		"memory": NewMemoryFileSystem(),
	}
	for name, fsys := range filesystems {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scene.json")
			if err := fsys.WriteFile(path, []byte(`{"size": 5}`), 0644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if err := fsys.WriteFile(path, []byte("{}"), 0644); err != nil {
				t.Fatalf("WriteFile overwrite: %v", err)
			}

			data, err := fsys.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if string(data) != "{}" {
				t.Errorf("expected overwritten contents, got %q", data)
			}
		})
	}
}
