package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"lazyconf"
)

func main() {
	dir, err := os.MkdirTemp("", "lazyconf-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	content := `
[connections.mysql]
host = "localhost"
port = 3306
timeout = "30s"
`
	if err := os.WriteFile(filepath.Join(dir, "database.toml"), []byte(content), 0644); err != nil {
		log.Fatal(err)
	}

	store := lazyconf.NewBuilder().
		WithSearchPath(dir).
		WithSeed(map[string]any{"app.name": "example"}).
		MustBuild()

	// The first access to the "database" namespace loads database.toml.
	host := store.GetOr("database.connections.mysql.host", "127.0.0.1")
	port, _ := store.Int64("database.connections.mysql.port")
	fmt.Printf("%s connecting to %s:%d\n", store.GetOr("app.name", "app"), host, port)

	var mysql struct {
		Host    string        `toml:"host"`
		Port    int           `toml:"port"`
		Timeout time.Duration `toml:"timeout"`
	}
	if err := store.Scan("database.connections.mysql", &mysql); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("decoded: %+v\n", mysql)

	fmt.Println("known paths:", store.Paths())
}
