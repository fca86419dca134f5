package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if CLIName() != "aio" {
		t.Errorf("CLIName() = %q", CLIName())
	}
	if HomeDir() != ".aio" {
		t.Errorf("HomeDir() = %q", HomeDir())
	}
	if Description() == "" || DisplayName() == "" {
		t.Error("description and display name must be set")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("log_level"); got != "AIO_LOG_LEVEL" {
		t.Errorf("EnvVar() = %q", got)
	}
}
