package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/citizenportal/internal/filex"
	"github.com/dmitrijs2005/citizenportal/internal/netx"
)

const downloadDir = "downloads"

// Transfers go straight to object storage through presigned URLs.
var (
	uploadFn   = netx.UploadToPresignedURL
	downloadFn = netx.DownloadFromPresignedURL
)

// Upload stores a local file as a document: upload <file> [type]
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		a.println("Usage: upload <file> [passport|id_card|certificate|permit|other]")
		return nil
	}
	documentType := "other"
	if len(args) == 2 {
		documentType = args[1]
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}

	notes, err := getSimpleText(a.reader, "Notes (optional)", a.out)
	if err != nil {
		return err
	}

	name := filepath.Base(args[0])
	res, err := a.portal.RequestDocumentUpload(ctx, name, documentType, notes)
	if err != nil {
		return err
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if err := uploadFn(ctx, res.UploadURL, f, fi.Size(), contentType); err != nil {
		return err
	}
	a.printf("Uploaded %s as document %s\n", name, res.Document.ID)
	return nil
}

func (a *App) Documents(ctx context.Context, args []string) error {
	docs, err := a.portal.ListDocuments(ctx)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		a.println("No documents.")
		return nil
	}

	w := a.table()
	fmt.Fprintln(w, "ID\tUPLOADED\tOWNER\tTYPE\tNAME\tNOTES")
	for _, d := range docs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, formatTime(d.CreatedAt), d.UserEmail, d.DocumentType, d.DocumentName, orDash(d.Notes))
	}
	return w.Flush()
}

// Download saves a document under ./downloads: download <document-id> [--url]
// With --url only the short lived link is printed.
func (a *App) Download(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 || (len(args) == 2 && args[1] != "--url") {
		a.println("Usage: download <document-id> [--url]")
		return nil
	}
	id := args[0]

	url, err := a.portal.DocumentURL(ctx, id)
	if err != nil {
		return err
	}
	if len(args) == 2 {
		a.println(url)
		return nil
	}

	dir, err := filex.EnsureDir("", downloadDir)
	if err != nil {
		return err
	}
	out, err := filex.CreateUnique(dir, a.documentName(ctx, id))
	if err != nil {
		return err
	}
	defer out.Close()

	n, err := downloadFn(ctx, url, out)
	if err != nil {
		os.Remove(out.Name())
		return err
	}
	a.printf("Saved %d bytes to %s\n", n, out.Name())
	return nil
}

// documentName looks the document up for a file name and falls back to its id.
func (a *App) documentName(ctx context.Context, id string) string {
	docs, err := a.portal.ListDocuments(ctx)
	if err != nil {
		return id
	}
	for _, d := range docs {
		if d.ID == id {
			return d.DocumentName
		}
	}
	return id
}
