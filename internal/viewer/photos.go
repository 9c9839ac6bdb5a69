package viewer

import (
	"errors"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/flipbook/internal/config"
	"github.com/Faultbox/flipbook/internal/engine/audio"
	"github.com/Faultbox/flipbook/internal/engine/texture"
	"github.com/Faultbox/flipbook/internal/logger"
)

type folderPick struct {
	dir string
	err error
}

// photoList lists dir, or returns nil when dir is empty or unreadable.
func (v *Viewer) photoList(dir string) []string {
	if dir == "" {
		return nil
	}
	photos, err := texture.ListPhotos(dir)
	if err != nil {
		logger.Warn("photo folder unavailable", zap.String("dir", dir), zap.Error(err))
		return nil
	}
	logger.Info("photos found", zap.String("dir", dir), zap.Int("count", len(photos)))
	return photos
}

// loadPhotos decodes every page photo and hands it to the renderer.
// Missing or broken photos leave the page blank.
func (v *Viewer) loadPhotos() {
	dims := v.book.Dimensions()
	aspect := dims.Width / dims.Height
	for i, p := range v.book.Pages {
		if p.Payload.Photo == "" {
			continue
		}
		img, err := texture.LoadPhoto(p.Payload.Photo, texture.DefaultMaxSize, aspect)
		if err != nil {
			logger.Warn("page photo skipped", zap.Int("page", i), zap.Error(err))
			continue
		}
		v.renderer.SetPhoto(i, img)
	}
}

// chooseFolder opens the native folder picker without blocking the render
// loop. The result arrives on v.folders.
func (v *Viewer) chooseFolder() {
	if v.choosing {
		return
	}
	v.choosing = true
	go func() {
		dir, err := dialog.Directory().Title("Choose a photo folder").Browse()
		v.folders <- folderPick{dir: dir, err: err}
	}()
}

// pollFolderPick applies a finished folder pick. The book is rebuilt only
// when idle, so a pick that lands mid-flip waits for the flip to end.
func (v *Viewer) pollFolderPick() {
	if !v.choosing || v.animator.Busy() {
		return
	}
	select {
	case pick := <-v.folders:
		v.choosing = false
		if errors.Is(pick.err, dialog.ErrCancelled) {
			return
		}
		if pick.err != nil {
			logger.Warn("folder picker failed", zap.Error(pick.err))
			return
		}
		v.usePhotoDir(pick.dir)
	default:
	}
}

func (v *Viewer) usePhotoDir(dir string) {
	photos := v.photoList(dir)
	if photos == nil {
		return
	}
	v.cfg.Book.PhotoDir = dir

	flipCfg := v.animator.Config()
	if err := v.buildBook(flipCfg, photos); err != nil {
		logger.Error("rebuilding book failed", zap.Error(err))
		return
	}
	v.updateTitle()

	// Remember the album for the next start
	path, err := config.SavePhotoDir(dir)
	if err != nil {
		logger.Warn("saving photo folder failed", zap.String("path", path), zap.Error(err))
		return
	}
	logger.Debug("photo folder saved", zap.String("path", path))
}

// newAudio starts the speaker and loads custom sounds. It returns nil when
// the device cannot be opened; the book then runs silently.
func newAudio(cfg config.AudioConfig) *audio.Manager {
	m := audio.New()
	m.SetMasterVolume(cfg.MasterVolume)
	m.SetSFXVolume(cfg.SFXVolume)

	for sound, path := range map[audio.Sound]string{
		audio.SoundFlip:  cfg.FlipSound,
		audio.SoundCover: cfg.CoverSound,
	} {
		if path == "" {
			continue
		}
		if err := m.LoadFile(sound, path); err != nil {
			logger.Warn("custom sound skipped", zap.Stringer("sound", sound), zap.Error(err))
		}
	}

	if err := m.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
		return nil
	}
	logger.Debug("audio volumes",
		zap.Float64("master", m.GetMasterVolume()),
		zap.Float64("sfx", m.GetSFXVolume()))
	return m
}
