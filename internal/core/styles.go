package core

import (
	"fmt"
	"log"
	"os"

	"github.com/chess10kp/dockrun/internal/config"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
)

const stylesTemplate = `
* {
    font-family: %[1]q;
    margin: 0;
    padding: 0;
}

window, #dock-box, #dock-strip {
    background-color: %[2]s;
}

label {
    color: %[3]s;
}

#dock-query {
    color: %[4]s;
    padding: 0 %[7]dpx;
}

.dock-item {
    padding: %[7]dpx;
}

.dock-item.active {
    background-color: %[5]s;
}

.dock-item.active label {
    color: %[4]s;
}

.dock-item.error label {
    color: %[6]s;
}
`

// Styles renders the stylesheet for the configured appearance.
func Styles(a config.AppearanceConfig) string {
	return fmt.Sprintf(stylesTemplate, a.Font, a.Background, a.Text, a.Active, a.ActiveBg, a.Error, a.Margin)
}

func SetupStyles(cfg *config.Config) {
	screen, err := gdk.ScreenGetDefault()
	if err != nil || screen == nil {
		log.Printf("[CORE] Warning: Failed to get default screen: %v", err)
		return
	}

	provider, _ := gtk.CssProviderNew()
	if err := provider.LoadFromData(Styles(cfg.Appearance)); err != nil {
		log.Printf("[CORE] Warning: Failed to load styles: %v", err)
		return
	}
	gtk.AddProviderForScreen(screen, provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)

	if cfg.Appearance.CSSPath != "" {
		LoadCustomCSS(screen, cfg.Appearance.CSSPath)
	}
}

func LoadCustomCSS(screen *gdk.Screen, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[CORE] Warning: Failed to read %s: %v", path, err)
		return
	}

	provider, _ := gtk.CssProviderNew()
	if err := provider.LoadFromData(string(data)); err != nil {
		log.Printf("[CORE] Warning: Failed to load %s: %v", path, err)
		return
	}
	gtk.AddProviderForScreen(screen, provider, gtk.STYLE_PROVIDER_PRIORITY_USER)
}
