package main

import "testing"

func TestVersionString(t *testing.T) {
	want := "version dev\ncommit_id unknown"

	got := versionString()

	if got != want {
		t.Fatalf("expected version string %q, got %q", want, got)
	}
}

func TestRootCommandHasVersion(t *testing.T) {
	if rootCmd.Version == "" {
		t.Fatal("expected root command to have a version")
	}
}
