package mytesting

import (
	"context"
	"os"
	"path/filepath"

	"github.com/jcooky/go-din"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/suite"

	"github.com/habiliai/signalrank/errors"
)

// Suite gives every test a fresh context and an EnvTest container, so each
// test sees its own in-memory database.
type Suite struct {
	suite.Suite
	context.Context

	Cancel    context.CancelFunc
	Container *din.Container
}

func (s *Suite) SetupTest() {
	s.Require().NoError(loadEnvFiles())

	s.Context, s.Cancel = context.WithCancel(context.TODO())
	s.Container = din.NewContainer(s.Context, din.EnvTest)
}

func (s *Suite) TearDownTest() {
	s.Container.Close()
	s.Cancel()
}

// loadEnvFiles loads the optional .env and .env.test files next to go.mod.
// go test runs in the package directory, so the module root is found by
// walking up from there.
func loadEnvFiles() error {
	wd, err := os.Getwd()
	if err != nil {
		return errors.WithStack(err)
	}

	root := wd
	for {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(root)
		if parent == root {
			return errors.Errorf("no module root above %s", wd)
		}
		root = parent
	}

	for _, name := range []string{".env", ".env.test"} {
		filename := filepath.Join(root, name)
		if _, err := os.Stat(filename); err != nil {
			continue
		}
		if err := godotenv.Load(filename); err != nil {
			return errors.Wrapf(err, "failed to load %s", filename)
		}
	}
	return nil
}
