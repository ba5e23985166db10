package app

import (
	"github.com/bethropolis/nib/internal/event"
	"github.com/bethropolis/nib/internal/logger"
)

// subscribeLogging records the session lifecycle in the log.
func (a *App) subscribeLogging() {
	em := a.editor.Events()
	em.Subscribe(event.TypeAppReady, a.handleAppReady)
	em.Subscribe(event.TypeAppQuit, a.handleAppQuit)
	em.Subscribe(event.TypeBufferLoaded, a.handleBufferLoaded)
	em.Subscribe(event.TypeBufferSaved, a.handleBufferSaved)
}

func (a *App) handleAppReady(e event.Event) bool {
	logger.Infof("App: ready (flavor=%s, backend=%s)", a.cfg.Editor.Flavor, a.cfg.Editor.Backend)
	return false
}

func (a *App) handleAppQuit(e event.Event) bool {
	if data, ok := e.Data.(event.AppQuitData); ok && data.Dirty {
		logger.Warnf("App: quitting with unsaved changes")
	} else {
		logger.Infof("App: quitting")
	}
	return false
}

func (a *App) handleBufferLoaded(e event.Event) bool {
	if data, ok := e.Data.(event.BufferLoadedData); ok {
		logger.DebugTagf("document", "App: loaded %q (%d lines)", data.Location, data.Lines)
	}
	return false
}

func (a *App) handleBufferSaved(e event.Event) bool {
	if data, ok := e.Data.(event.BufferSavedData); ok {
		logger.DebugTagf("document", "App: saved %q as %s", data.Location, data.Charset)
	}
	return false
}
