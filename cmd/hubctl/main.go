// Command hubctl inspects and seeds the persisted StartupHub state.
//
//	hubctl export                 print every persisted key as one JSON object
//	hubctl import-mentors <file>  replace the mentor directory from a JSON array
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/startuphub/startuphub/internal/config"
	"github.com/startuphub/startuphub/internal/mentors"
	"github.com/startuphub/startuphub/internal/models"
	"github.com/startuphub/startuphub/internal/state"
	"github.com/startuphub/startuphub/internal/storage"
	"github.com/startuphub/startuphub/pkg/logger"
)

var errUsage = errors.New("usage: hubctl [-log-level level] export | import-mentors <file>")

func main() {
	fs := flag.NewFlagSet("hubctl", flag.ExitOnError)
	level := fs.String("log-level", "warn", "log level")
	_ = fs.Parse(os.Args[1:])
	logger.Init(*level)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	ctx := context.Background()
	b, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open storage: %v", err)
	}
	err = run(ctx, fs.Args(), os.Stdout, b)
	_ = b.Close(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer, b *storage.Backend) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "export":
		return export(ctx, out, b)
	case "import-mentors":
		if len(args) != 2 {
			return errUsage
		}
		return importMentors(ctx, args[1], out, b)
	}
	return errUsage
}

// export dumps the raw blobs. Values that are not valid JSON are emitted as strings.
func export(ctx context.Context, out io.Writer, b *storage.Backend) error {
	dump := make(map[string]json.RawMessage, len(state.Keys))
	for _, k := range state.Keys {
		v, ok, err := b.KV.Get(ctx, k)
		if err != nil {
			return fmt.Errorf("read %s: %w", k, err)
		}
		if !ok {
			continue
		}
		if !json.Valid([]byte(v)) {
			quoted, _ := json.Marshal(v)
			v = string(quoted)
		}
		dump[k] = json.RawMessage(v)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(dump)
}

func importMentors(ctx context.Context, path string, out io.Writer, b *storage.Backend) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var list []*models.Mentor
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	store := state.NewStore(b.KV)
	store.Load(ctx)
	if err := mentors.NewService(store).Import(ctx, list); err != nil {
		return err
	}
	fmt.Fprintf(out, "imported %d mentors\n", len(list))
	return nil
}
