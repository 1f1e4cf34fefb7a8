package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/citizenportal/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func stubPassword(t *testing.T, pw []byte) {
	t.Helper()
	old := getPassword
	t.Cleanup(func() { getPassword = old })
	getPassword = func(*bufio.Reader, io.Writer) ([]byte, error) { return pw, nil }
}

func TestLogin_PollsSessionAndWipesPassword(t *testing.T) {
	p := &fakePortal{settings: &api.PublicSettings{AppName: "Citizen Portal"}}
	a, out := newTestApp(t, p, "")
	scriptText(t, "ann@example.com")
	pw := []byte("secret")
	stubPassword(t, pw)

	require.NoError(t, a.Login(context.Background(), nil))

	assert.Equal(t, 1, p.logins)
	assert.True(t, a.publisher.Current().Authenticated)
	assert.Equal(t, "(ann@example.com) ", a.status())
	assert.NotNil(t, a.settings)
	assert.Contains(t, out.String(), "Login successful")
	assert.Equal(t, make([]byte, len("secret")), pw)
}

func TestLogout_AlwaysSignsOutLocally(t *testing.T) {
	p := &fakePortal{loggedIn: true, user: &api.User{ID: "u1", Email: "ann@example.com"}, callErr: errors.New("boom")}
	a, out := newTestApp(t, p, "")
	require.True(t, a.publisher.Current().Authenticated)

	require.NoError(t, a.Logout(context.Background(), nil))

	assert.False(t, a.publisher.Current().Authenticated)
	assert.Contains(t, out.String(), "Logged out")
}

func TestHistory_Empty(t *testing.T) {
	a, out := newTestApp(t, &fakePortal{}, "")

	require.NoError(t, a.History(context.Background(), nil))
	assert.Equal(t, "No transaction history yet.\n", out.String())
}

func TestHistory_Rows(t *testing.T) {
	p := &fakePortal{history: []*api.HistoryEntry{
		{
			Transaction:   &api.Transaction{Type: "transfer_sent", Amount: "50.00", ToVntID: "VNT-2", Description: "rent", Status: "completed", CreatedAt: timestamppb.Now()},
			Debit:         true,
			DisplayAmount: "-50 VHS",
		},
		{
			Transaction:   &api.Transaction{Type: "transfer_sent", Amount: "20.00", FromVntID: "VNT-3"},
			DisplayAmount: "+20 VHS",
		},
		{
			Transaction:   &api.Transaction{Type: "purchase", Amount: "300.00", ItemName: "Flight VX101", Status: "pending"},
			Debit:         true,
			DisplayAmount: "-300 VHS",
		},
	}}
	a, out := newTestApp(t, p, "")

	require.NoError(t, a.History(context.Background(), nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "-50 VHS")
	assert.Contains(t, lines[0], "to VNT-2 - rent")
	assert.Contains(t, lines[0], "completed")
	assert.Contains(t, lines[1], "+20 VHS")
	assert.Contains(t, lines[1], "from VNT-3")
	assert.True(t, strings.HasPrefix(lines[1], "-"), "missing time renders as a dash")
	assert.Contains(t, lines[2], "Flight VX101")
	assert.Contains(t, lines[2], "pending")
}

func TestTransfer(t *testing.T) {
	p := &fakePortal{transferTx: &api.Transaction{Amount: "12.50", ToVntID: "VNT-2"}}
	a, out := newTestApp(t, p, "")

	require.NoError(t, a.Transfer(context.Background(), []string{"VNT-2"}))
	assert.Contains(t, out.String(), "Usage: transfer")
	assert.Nil(t, p.transferIn)

	require.NoError(t, a.Transfer(context.Background(), []string{"VNT-2", "12.5", "for", "lunch"}))
	assert.Equal(t, []string{"VNT-2", "12.5", "for lunch"}, p.transferIn)
	assert.Contains(t, out.String(), "Sent 12.50 VHS to VNT-2")
}

func TestNewVote(t *testing.T) {
	p := &fakePortal{}
	a, out := newTestApp(t, p, "")
	scriptText(t, "Park budget", "", "referendum", "2026-05-01", "")
	old := getLines
	t.Cleanup(func() { getLines = old })
	getLines = func(_ *bufio.Reader, _ string, _ io.Writer) ([]string, error) {
		return []string{"Yes", "No"}, nil
	}

	require.NoError(t, a.NewVote(context.Background(), nil))

	require.NotNil(t, p.createdVote)
	assert.Equal(t, "Park budget", p.createdVote.Title)
	assert.Equal(t, "referendum", p.createdVote.VoteType)
	assert.Equal(t, []string{"Yes", "No"}, p.createdVote.Options)
	require.NotNil(t, p.createdVote.StartDate)
	assert.Equal(t, "2026-05-01", p.createdVote.StartDate.AsTime().Local().Format(dateLayout))
	assert.Nil(t, p.createdVote.EndDate)
	assert.Contains(t, out.String(), "Created draft vote v1 with 2 options")
}

func TestNewVote_BadDate(t *testing.T) {
	p := &fakePortal{}
	a, _ := newTestApp(t, p, "")
	scriptText(t, "Park budget", "", "", "01.05.2026")
	old := getLines
	t.Cleanup(func() { getLines = old })
	getLines = func(_ *bufio.Reader, _ string, _ io.Writer) ([]string, error) { return []string{"Yes"}, nil }

	err := a.NewVote(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected YYYY-MM-DD")
	assert.Nil(t, p.createdVote)
}

func TestDeleteVote_NeedsConfirmation(t *testing.T) {
	p := &fakePortal{}
	a, out := newTestApp(t, p, "")

	scriptText(t, "n")
	require.NoError(t, a.DeleteVote(context.Background(), []string{"v1"}))
	assert.Empty(t, p.deleted)

	scriptText(t, "yes")
	require.NoError(t, a.DeleteVote(context.Background(), []string{"v1"}))
	assert.Equal(t, []string{"v1"}, p.deleted)
	assert.Contains(t, out.String(), "Vote deleted")
}

func TestUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passport.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	p := &fakePortal{uploadRes: &api.RequestDocumentUploadResponse{
		Document:  &api.Document{ID: "d1"},
		UploadURL: "https://s3.local/put",
	}}
	a, out := newTestApp(t, p, "")
	scriptText(t, "renewal")

	var gotURL, gotType string
	var gotSize int64
	old := uploadFn
	t.Cleanup(func() { uploadFn = old })
	uploadFn = func(_ context.Context, url string, body io.Reader, size int64, contentType string) error {
		gotURL, gotSize, gotType = url, size, contentType
		b, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4", string(b))
		return nil
	}

	require.NoError(t, a.Upload(context.Background(), []string{path, "passport"}))

	assert.Equal(t, []string{"passport.pdf", "passport", "renewal"}, p.uploadIn)
	assert.Equal(t, "https://s3.local/put", gotURL)
	assert.Equal(t, int64(8), gotSize)
	assert.Equal(t, "application/pdf", gotType)
	assert.Contains(t, out.String(), "Uploaded passport.pdf as document d1")
}

func TestDownload_PrintsURL(t *testing.T) {
	p := &fakePortal{docURL: "https://s3.local/get?sig=1"}
	a, out := newTestApp(t, p, "")

	require.NoError(t, a.Download(context.Background(), []string{"d1", "--url"}))
	assert.Equal(t, "https://s3.local/get?sig=1\n", out.String())
}

func TestDownload_SavesFile(t *testing.T) {
	tmp := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	p := &fakePortal{
		docURL: "https://s3.local/get",
		docs:   []*api.Document{{ID: "d1", DocumentName: "passport.pdf"}},
	}
	a, out := newTestApp(t, p, "")

	old := downloadFn
	t.Cleanup(func() { downloadFn = old })
	downloadFn = func(_ context.Context, url string, w io.Writer) (int64, error) {
		n, err := io.WriteString(w, "content")
		return int64(n), err
	}

	require.NoError(t, a.Download(context.Background(), []string{"d1"}))

	b, err := os.ReadFile(filepath.Join(tmp, downloadDir, "passport.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(b))
	assert.Contains(t, out.String(), "Saved 7 bytes to")
}
