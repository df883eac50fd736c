package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"strings"
	"testing"

	"Petly/internal/loyalty"
	"Petly/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// formFile builds the *multipart.FileHeader gin hands to handlers.
func formFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newPetService(f *fixture) (*PetService, *memBucket) {
	bucket := &memBucket{}
	return &PetService{Pets: f.pets, Reward: f.reward, Upload: &UploadService{Bucket: bucket}}, bucket
}

func TestPet_CreateAndUpdate(t *testing.T) {
	f := newFixture()
	svc, _ := newPetService(f)
	ctx := context.Background()

	created, err := svc.Create(ctx, clientSession(), &types.CreatePetReq{Name: " Toby ", Species: "dog", BirthDate: "2020-05-01"})
	require.NoError(t, err)
	assert.Equal(t, int64(40), created.PointsEarned)
	assert.Equal(t, "Toby", created.Pet.Name)
	assert.Equal(t, "2020-05-01", created.Pet.BirthDate)

	upd, err := svc.Update(ctx, clientSession(), created.Pet.ID, &types.UpdatePetReq{Breed: strPtr("Beagle")}, "edit-1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), upd.PointsEarned)

	again, err := svc.Update(ctx, clientSession(), created.Pet.ID, &types.UpdatePetReq{Breed: strPtr("Beagle")}, "edit-1")
	require.NoError(t, err)
	assert.Zero(t, again.PointsEarned)

	noop, err := svc.Update(ctx, clientSession(), created.Pet.ID, &types.UpdatePetReq{}, "")
	require.NoError(t, err)
	assert.Zero(t, noop.PointsEarned)

	assert.Len(t, f.ledger.granted(loyalty.PetUpdated), 1)
}

func TestPet_Validation(t *testing.T) {
	f := newFixture()
	svc, _ := newPetService(f)
	ctx := context.Background()
	var in *InputError

	_, err := svc.Create(ctx, clientSession(), &types.CreatePetReq{Name: "  "})
	assert.ErrorAs(t, err, &in)

	_, err = svc.Create(ctx, clientSession(), &types.CreatePetReq{Name: "Kira", BirthDate: "01/05/2020"})
	assert.ErrorAs(t, err, &in)

	_, err = svc.Update(ctx, ownerSession(), petID, &types.UpdatePetReq{Name: strPtr("X")}, "")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, ownerSession(), petID), ErrNotFound)
	assert.NoError(t, svc.Delete(ctx, clientSession(), petID))
}

func TestPet_UploadPhotoGrantsOnce(t *testing.T) {
	f := newFixture()
	svc, bucket := newPetService(f)
	ctx := context.Background()

	first, err := svc.UploadPhoto(ctx, clientSession(), petID, formFile(t, "luna.png", pngBytes(t, 4, 3)))
	require.NoError(t, err)
	assert.Equal(t, int64(15), first.PointsEarned)
	assert.True(t, strings.HasPrefix(first.Pet.PhotoURL, "https://cdn.petly.test/pets/1/"))
	assert.True(t, strings.HasSuffix(first.Pet.PhotoURL, ".png"))

	second, err := svc.UploadPhoto(ctx, clientSession(), petID, formFile(t, "luna2.png", pngBytes(t, 2, 2)))
	require.NoError(t, err)
	assert.Zero(t, second.PointsEarned)
	assert.Len(t, bucket.keys, 2)
}

func TestPet_UploadPhotoRetryAfterGrantFailure(t *testing.T) {
	f := newFixture()
	svc, _ := newPetService(f)
	ctx := context.Background()

	f.ledger.err = errors.New("ledger down")
	_, err := svc.UploadPhoto(ctx, clientSession(), petID, formFile(t, "luna.png", pngBytes(t, 4, 3)))
	require.Error(t, err)
	assert.Empty(t, f.ledger.granted(loyalty.PetPhotoUploaded))

	f.ledger.err = nil
	retry, err := svc.UploadPhoto(ctx, clientSession(), petID, formFile(t, "luna.png", pngBytes(t, 4, 3)))
	require.NoError(t, err)
	assert.Equal(t, int64(15), retry.PointsEarned)

	again, err := svc.UploadPhoto(ctx, clientSession(), petID, formFile(t, "luna3.png", pngBytes(t, 2, 2)))
	require.NoError(t, err)
	assert.Zero(t, again.PointsEarned)
	assert.Len(t, f.ledger.granted(loyalty.PetPhotoUploaded), 1)
}

func TestUploadImage_RejectsNonImages(t *testing.T) {
	svc := &UploadService{Bucket: &memBucket{}}
	var in *InputError

	_, err := svc.UploadImage(context.Background(), clientID, "avatars", formFile(t, "notes.txt", []byte("hello world")))
	assert.ErrorAs(t, err, &in)

	_, err = svc.UploadImage(context.Background(), clientID, "avatars", nil)
	assert.ErrorAs(t, err, &in)

	resp, err := svc.UploadImage(context.Background(), clientID, "avatars", formFile(t, "a.png", pngBytes(t, 8, 6)))
	require.NoError(t, err)
	assert.Equal(t, 8, resp.Width)
	assert.Equal(t, 6, resp.Height)
}
