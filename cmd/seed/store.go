package main

import (
	"fmt"
	"os"

	"github.com/chazu/seed/pkg/bytecode"
	"github.com/chazu/seed/pkg/diag"
	"github.com/chazu/seed/pkg/store"
)

// handleStoreCommand processes the `seed store` subcommand.
// Usage:
//
//	seed store put FILE...   Add chunk files to the store
//	seed store ls            List stored chunks
//	seed store rm HASH       Remove a stored chunk
func (e *env) handleStoreCommand(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(e.stderr, "Usage: seed store [put|ls|rm] ...")
		return errUsage
	}

	s, err := store.Open(e.cfg.StorePath())
	if err != nil {
		return e.fail(diag.ReporterStore, err)
	}
	defer s.Close()

	switch args[0] {
	case "put":
		if len(args) < 2 {
			fmt.Fprintln(e.stderr, "Usage: seed store put FILE...")
			return errUsage
		}
		for _, path := range args[1:] {
			if err := e.storePut(s, path); err != nil {
				return err
			}
		}
		return nil
	case "ls":
		entries, err := s.List()
		if err != nil {
			return e.fail(diag.ReporterStore, err)
		}
		for _, en := range entries {
			fmt.Fprintf(e.stdout, "%s  %-12s %6d  %s\n",
				en.Hash[:16], en.Name, en.Size, en.Created.Format("2006-01-02 15:04:05"))
		}
		return nil
	case "rm":
		if len(args) != 2 {
			fmt.Fprintln(e.stderr, "Usage: seed store rm HASH")
			return errUsage
		}
		hash, err := s.Resolve(args[1])
		if err != nil {
			return e.fail(diag.ReporterStore, err)
		}
		if _, err := s.Delete(hash); err != nil {
			return e.fail(diag.ReporterStore, err)
		}
		fmt.Fprintf(e.stdout, "removed %s\n", hash)
		return nil
	default:
		fmt.Fprintf(e.stderr, "Unknown store subcommand: %s\n", args[0])
		return errUsage
	}
}

func (e *env) storePut(s *store.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	chunk, err := bytecode.UnmarshalChunk(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	hash, err := s.Put(chunk)
	if err != nil {
		return e.fail(diag.ReporterStore, err)
	}
	fmt.Fprintf(e.stdout, "%s  %s\n", hash, path)
	return nil
}
