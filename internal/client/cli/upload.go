package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/portalcli/internal/client/validate"
)

// Upload validates a photo locally (type and size) and sends it to the
// server. Validation failures never reach the network.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: upload <file>")
		return nil
	}
	path := args[0]
	filename := filepath.Base(path)

	if err := validate.PhotoFilename(filename); err != nil {
		a.ui.Error(err.Error())
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		a.ui.Error("Could not read file: " + err.Error())
		return err
	}
	if err := validate.PhotoSize(info.Size()); err != nil {
		a.ui.Error(err.Error())
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		a.ui.Error("Could not read file: " + err.Error())
		return err
	}

	photo, err := a.apiClient.UploadPhoto(ctx, filename, data)
	if err != nil {
		a.ui.Error("Upload failed: " + authFailureMessage(err))
		return err
	}

	a.ui.Success(fmt.Sprintf("Uploaded %s (#%d).", photo.Filename, photo.ID))
	if photo.URL != "" {
		fmt.Println(photo.URL)
	}
	return nil
}
