package main

import (
	"testing"

	"github.com/eklerner/tdo/internal/testsupport"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestAuthScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/auth",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
	})
}
