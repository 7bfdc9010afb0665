package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grnflow/internal/config"
	"grnflow/internal/domain"
	"grnflow/internal/port"
)

// fakeExtractor maps document names to canned text; unknown names yield "",
// the same signal a real unreadable PDF produces.
type fakeExtractor struct {
	texts map[string]string
}

func (f *fakeExtractor) Text(_ []byte, name string) string {
	return f.texts[name]
}

type fakeStorage struct {
	objects   []port.StoredObject
	downloads map[string][]byte
	uploaded  []string

	listErr     error
	downloadErr map[string]error
}

func (f *fakeStorage) List(_ context.Context, _ port.ListInput) ([]port.StoredObject, error) {
	return f.objects, f.listErr
}

func (f *fakeStorage) Download(_ context.Context, key string) ([]byte, error) {
	if err := f.downloadErr[key]; err != nil {
		return nil, err
	}
	return f.downloads[key], nil
}

func (f *fakeStorage) Upload(_ context.Context, input port.UploadInput) error {
	f.uploaded = append(f.uploaded, input.Key)
	return nil
}

const grnText = `GOODS RECEIPT NOTE No. : GRN12345
Vendor invoice no : INV999
S No Article
1 100 Widget Blue 1234567890123 PCS 10 10 10 99.50
2 200 Widget Red 9876543210987 PCS 5 5 5 50.00
`

func newTestService(ext port.TextExtractor, storage port.ObjectStorage, archive config.ArchiveConfig) (ProcessService, *ResultStore) {
	store := NewResultStore(8)
	svc := NewProcessService(ext, storage, store,
		config.BatchConfig{Concurrency: 3, DaysBack: 30, MaxFiles: 100}, archive)
	return svc, store
}

func TestProcessUpload_JoinsMetadataWithItems(t *testing.T) {
	ext := &fakeExtractor{texts: map[string]string{"a.pdf": grnText}}
	svc, store := newTestService(ext, nil, config.ArchiveConfig{})

	result, err := svc.ProcessUpload(context.Background(), []InputDocument{
		{Name: "a.pdf", Data: []byte("%PDF")},
	})
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	for _, r := range result.Records {
		require.NotNil(t, r.GRNNo)
		assert.Equal(t, "GRN12345", *r.GRNNo)
		require.NotNil(t, r.ChallanNo)
		assert.Equal(t, "INV999", *r.ChallanNo)
		require.NotNil(t, r.Item)
		assert.Equal(t, domain.SourceLocal, r.Source)
		assert.Equal(t, "a.pdf", r.FileName)
	}
	assert.Equal(t, "1", result.Records[0].Item.SNo)
	assert.Equal(t, "2", result.Records[1].Item.SNo)

	require.Len(t, result.Files, 1)
	assert.Equal(t, 2, result.Files[0].RecordCount)
	assert.Equal(t, 2, result.Files[0].ItemCount)
	assert.False(t, result.Files[0].NoData)

	// The batch is retrievable from the store afterwards.
	stored, err := store.Get(result.ID)
	require.NoError(t, err)
	assert.Equal(t, result, stored)
}

func TestProcessUpload_MetadataOnlyFallbackRow(t *testing.T) {
	ext := &fakeExtractor{texts: map[string]string{
		"header_only.pdf": "GOODS RECEIPT NOTE No. : G77\n",
	}}
	svc, _ := newTestService(ext, nil, config.ArchiveConfig{})

	result, err := svc.ProcessUpload(context.Background(), []InputDocument{
		{Name: "header_only.pdf", Data: []byte("%PDF")},
	})
	require.NoError(t, err)

	// Zero items still yields exactly one metadata-only row.
	require.Len(t, result.Records, 1)
	assert.Nil(t, result.Records[0].Item)
	require.NotNil(t, result.Records[0].GRNNo)
	assert.Equal(t, "G77", *result.Records[0].GRNNo)
	assert.False(t, result.Files[0].NoData)
}

func TestProcessUpload_UnreadablePDFIsNoData(t *testing.T) {
	ext := &fakeExtractor{texts: map[string]string{}} // every doc extracts to ""
	svc, _ := newTestService(ext, nil, config.ArchiveConfig{})

	result, err := svc.ProcessUpload(context.Background(), []InputDocument{
		{Name: "broken.pdf", Data: []byte("garbage")},
	})
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.False(t, result.Records[0].HasData())
	assert.Equal(t, "broken.pdf", result.Records[0].SourceFile)
	assert.True(t, result.Files[0].NoData)
}

func TestProcessUpload_OrderPreservedAcrossWorkers(t *testing.T) {
	texts := map[string]string{}
	var docs []InputDocument
	names := []string{"d0.pdf", "d1.pdf", "d2.pdf", "d3.pdf", "d4.pdf", "d5.pdf", "d6.pdf", "d7.pdf"}
	for i, name := range names {
		texts[name] = "GOODS RECEIPT NOTE No. : G" + string(rune('0'+i)) + "\n"
		docs = append(docs, InputDocument{Name: name, Data: []byte("%PDF")})
	}
	svc, _ := newTestService(&fakeExtractor{texts: texts}, nil, config.ArchiveConfig{})

	result, err := svc.ProcessUpload(context.Background(), docs)
	require.NoError(t, err)

	require.Len(t, result.Records, len(names))
	for i, name := range names {
		assert.Equal(t, name, result.Records[i].FileName)
		assert.Equal(t, name, result.Files[i].FileName)
	}
}

func TestProcessUpload_NoFiles(t *testing.T) {
	svc, _ := newTestService(&fakeExtractor{}, nil, config.ArchiveConfig{})
	_, err := svc.ProcessUpload(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNoFiles)
}

func TestProcessUpload_ArchivesToStorage(t *testing.T) {
	storage := &fakeStorage{}
	ext := &fakeExtractor{texts: map[string]string{"a.pdf": grnText}}
	svc, _ := newTestService(ext, storage, config.ArchiveConfig{Enabled: true, Prefix: "archive"})

	_, err := svc.ProcessUpload(context.Background(), []InputDocument{
		{Name: "a.pdf", Data: []byte("%PDF")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"archive/a.pdf"}, storage.uploaded)
}

func TestProcessStorage_DownloadsAndProcesses(t *testing.T) {
	storage := &fakeStorage{
		objects: []port.StoredObject{
			{Key: "inbox/a.pdf", Name: "a.pdf", SizeBytes: 4, CreatedAt: time.Now()},
			{Key: "inbox/b.pdf", Name: "b.pdf", SizeBytes: 4, CreatedAt: time.Now()},
		},
		downloads: map[string][]byte{
			"inbox/a.pdf": []byte("%PDF"),
			"inbox/b.pdf": []byte("%PDF"),
		},
	}
	ext := &fakeExtractor{texts: map[string]string{
		"a.pdf": "GOODS RECEIPT NOTE No. : GA\n",
		"b.pdf": "GOODS RECEIPT NOTE No. : GB\n",
	}}
	svc, _ := newTestService(ext, storage, config.ArchiveConfig{})

	result, err := svc.ProcessStorage(context.Background(), StorageRequest{Prefix: "inbox"})
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	assert.Equal(t, domain.SourceStorage, result.Records[0].Source)
	assert.Equal(t, "inbox/a.pdf", result.Records[0].StorageKey)
	require.NotNil(t, result.Records[1].GRNNo)
	assert.Equal(t, "GB", *result.Records[1].GRNNo)
}

func TestProcessStorage_FailedDownloadDegradesToNoData(t *testing.T) {
	storage := &fakeStorage{
		objects: []port.StoredObject{
			{Key: "inbox/bad.pdf", Name: "bad.pdf"},
		},
		downloadErr: map[string]error{"inbox/bad.pdf": errors.New("boom")},
	}
	svc, _ := newTestService(&fakeExtractor{}, storage, config.ArchiveConfig{})

	result, err := svc.ProcessStorage(context.Background(), StorageRequest{Prefix: "inbox"})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.True(t, result.Files[0].NoData)
	require.Len(t, result.Records, 1)
	assert.False(t, result.Records[0].HasData())
}

func TestProcessStorage_ListError(t *testing.T) {
	storage := &fakeStorage{listErr: errors.New("denied")}
	svc, _ := newTestService(&fakeExtractor{}, storage, config.ArchiveConfig{})

	_, err := svc.ProcessStorage(context.Background(), StorageRequest{})
	assert.ErrorIs(t, err, domain.ErrStorageList)
}

func TestProcessStorage_NoStorageConfigured(t *testing.T) {
	svc, _ := newTestService(&fakeExtractor{}, nil, config.ArchiveConfig{})
	_, err := svc.ProcessStorage(context.Background(), StorageRequest{})
	assert.ErrorIs(t, err, domain.ErrStorageList)
}

func TestProcessStorage_EmptyListing(t *testing.T) {
	storage := &fakeStorage{}
	svc, _ := newTestService(&fakeExtractor{}, storage, config.ArchiveConfig{})
	_, err := svc.ProcessStorage(context.Background(), StorageRequest{})
	assert.ErrorIs(t, err, domain.ErrNoFiles)
}
