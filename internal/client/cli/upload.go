package cli

import (
	"context"
)

const takeoutHelp = `How to export your bookmarks from Google Maps:
  1. Go to https://takeout.google.com
  2. Select only Maps (Your Places)
  3. Choose JSON format and export
  4. Unzip the file and upload the correct JSON file below`

// Upload sends a bookmarks file. When the backend already has one for the
// user, an empty answer keeps it. Either way the user moves on to the
// preferences page.
func (a *App) Upload(ctx context.Context) error {
	if !a.navigate(ctx, PageUpload) {
		return nil
	}
	a.println(takeoutHelp)

	var hasPrevious bool
	err := a.withLoading(ctx, "Checking previous uploads", func() error {
		var err error
		hasPrevious, err = a.profile.HasPreviousBookmarks(ctx)
		return err
	})
	if err != nil {
		// not fatal: the user can still upload a new file
		a.log.Warn(ctx, "previous bookmarks check failed", "error", err)
		hasPrevious = false
	}

	prompt := "Path to your bookmarks JSON file"
	if hasPrevious {
		prompt += " (press Enter to use your previously uploaded bookmarks)"
	}
	path, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}

	if path == "" {
		if !hasPrevious {
			a.println("No file selected.")
			return nil
		}
		a.println("Using your previously uploaded bookmarks.")
		a.navigate(ctx, PagePreferences)
		return nil
	}

	err = a.withLoading(ctx, "Uploading bookmarks", func() error {
		resp, err := a.profile.UploadBookmarks(ctx, path)
		if err == nil && resp.Message != "" {
			a.println(resp.Message)
		}
		return err
	})
	if err != nil {
		return a.report(ctx, "upload bookmarks", err)
	}

	a.println("Upload successful!")
	a.navigate(ctx, PagePreferences)
	a.println("Next: set your trip 'preferences'.")
	return nil
}
