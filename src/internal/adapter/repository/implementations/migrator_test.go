package implementations

import (
	"reflect"
	"testing"
	"testing/fstest"
)

func TestMigrationFilesSortedAndFiltered(t *testing.T) {
	migrations := fstest.MapFS{
		"002_seed.sql":            {Data: []byte("SELECT 1;")},
		"001_create_accounts.SQL": {Data: []byte("SELECT 1;")},
		"README.md":               {Data: []byte("docs")},
		"archive/000_old.sql":     {Data: []byte("SELECT 1;")},
	}

	files, err := migrationFiles(migrations)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	want := []string{"001_create_accounts.SQL", "002_seed.sql"}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
}
