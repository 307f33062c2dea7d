package commands

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SscSPs/burnout_journal/internal/cli/printers"
)

func addUpload(topLevel *cobra.Command, o *Options) {
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Attach a photo or recording to your journal storage.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return err
			}

			contentType := mime.TypeByExtension(filepath.Ext(args[0]))
			if contentType == "" {
				contentType = "application/octet-stream"
			}

			client, err := o.apiClient()
			if err != nil {
				return err
			}
			ticket, err := client.CreateUpload(cmd.Context(), filepath.Base(args[0]), contentType)
			if err != nil {
				return err
			}

			req, err := http.NewRequestWithContext(cmd.Context(), ticket.Method, ticket.UploadURL, f)
			if err != nil {
				return err
			}
			req.ContentLength = info.Size()
			req.Header.Set("Content-Type", contentType)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return fmt.Errorf("upload: %w", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode < 200 || resp.StatusCode > 299 {
				return fmt.Errorf("upload rejected: %s", resp.Status)
			}
			printers.Success(cmd.OutOrStdout(), "Uploaded to %s.", ticket.FilePath)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
