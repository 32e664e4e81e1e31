package app

import (
	"fmt"
	"os"
	"path/filepath"

	"dropdf/internal/compression"
	"dropdf/internal/profile"
	"dropdf/internal/session"
)

// Tiers lists the profile tiers in document order and marks the session tier.
func (a *App) Tiers() ([]TierInfo, error) {
	doc, err := profile.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	sess, err := a.Session()
	if err != nil {
		return nil, err
	}

	var tiers []TierInfo
	for _, name := range doc.TierNames() {
		tier, _ := doc.Tier(name)
		flags := make([]string, 0, len(tier.Flags))
		for _, f := range tier.Flags {
			flags = append(flags, f.Arg())
		}
		tiers = append(tiers, TierInfo{
			Name:    name,
			Picture: doc.Picture(name),
			Flags:   flags,
			Current: name == sess.Tier,
		})
	}
	return tiers, nil
}

// SelectTier makes name the session tier and records its picture from pics.
func (a *App) SelectTier(name string) (*session.Session, error) {
	doc, err := profile.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	if _, ok := doc.Tier(name); !ok {
		return nil, fmt.Errorf("%w: %q", compression.ErrTierNotFound, name)
	}

	sess, err := a.store.SetTier(name, doc.Picture(name))
	if err != nil {
		return nil, err
	}
	a.logger.Info("Tier selected", "tier", name, "picture", sess.Picture)
	return sess, nil
}

// SetOutputDir sets where dropped files are written. An empty dir means next
// to each input file.
func (a *App) SetOutputDir(dir string) (*session.Session, error) {
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrNotDirectory, abs)
		}
		dir = abs
	}

	sess, err := a.store.SetOutputDir(dir)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Output directory set", "dir", dir)
	return sess, nil
}
