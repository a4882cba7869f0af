package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"tagforge/internal/config"
	"tagforge/internal/dataset"
	"tagforge/internal/journal"
	"tagforge/internal/logging"
)

type commandContext struct {
	configFlag *string
	folderFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, folderFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		folderFlag: folderFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) folder() string {
	if c.folderFlag == nil || strings.TrimSpace(*c.folderFlag) == "" {
		return "."
	}
	return strings.TrimSpace(*c.folderFlag)
}

// withStore loads the dataset named by --folder, runs fn against it, and
// releases the session lock afterwards.
func (c *commandContext) withStore(fn func(*dataset.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	folder, err := config.ExpandPath(c.folder())
	if err != nil {
		return err
	}

	store := dataset.NewStore(cfg, c.ensureLogger())
	if _, err := store.Load(folder); err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// withJournal opens the dataset's mutation journal when enabled. fn always
// runs; it receives nil when journaling is off or the journal cannot open.
func (c *commandContext) withJournal(store *dataset.Store, fn func(*journal.Journal) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.Journal.Enabled {
		return fn(nil)
	}
	j, err := journal.Open(store.Folder(), c.ensureLogger())
	if err != nil {
		c.ensureLogger().Warn("journal unavailable", logging.Error(err))
		return fn(nil)
	}
	defer j.Close()
	return fn(j)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
