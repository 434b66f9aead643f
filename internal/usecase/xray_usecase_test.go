package usecase

import (
	"context"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadRequest(patientID uint, filename, body string) *dto.UploadXrayRequest {
	return &dto.UploadXrayRequest{
		PatientID:   strconv.FormatUint(uint64(patientID), 10),
		File:        strings.NewReader(body),
		Filename:    filename,
		ContentType: "image/png",
		Size:        int64(len(body)),
	}
}

func clock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}

func TestUpload_ClassifiesAndStoresScan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hw := f.createHealthWorker(t, "worker1")
	patient := f.registerPatient(t, "amina@example.com")
	f.xrays.now = clock(time.Date(2024, 5, 17, 9, 3, 7, 0, time.UTC))

	resp, err := f.xrays.Upload(ctx, hw.AccountID, uploadRequest(patient.ID, "chest.png", "png-bytes"))
	require.NoError(t, err)

	assert.False(t, resp.Updated)
	assert.Contains(t, resp.Report, "Pneumonia")
	assert.Equal(t, string(entity.PredictionPneumonia), resp.Xray.Prediction)
	assert.Equal(t, "0.9312", resp.Xray.PneumoniaConfidence)
	assert.Equal(t, "20240517090307_img1_chest.png", resp.Xray.ImagePath)
	assert.Equal(t, hw.ID, resp.Xray.HealthWorkerID)
	assert.Equal(t, string(entity.XrayStatusPending), resp.Xray.Status)

	assert.Equal(t, []string{"20240517090307_img1_chest.png"}, f.storedImages(t))

	rc, contentType, err := f.xrays.OpenImage(ctx, resp.Xray.ID)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", contentType)
}

func TestUpload_PredictionFollowsReportText(t *testing.T) {
	cases := []struct {
		name   string
		report string
		want   entity.XrayPrediction
	}{
		{"pneumonia", "Prediction: Pneumonia detected.", entity.PredictionPneumonia},
		{"normal", "Prediction: Normal, no signs of pneumonia.", entity.PredictionNormal},
		{"inconclusive", "Prediction: Inconclusive.", entity.PredictionUnclear},
		{"lowercase", "normal pneumonia", entity.PredictionUnclear},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			hw := f.createHealthWorker(t, "worker1")
			patient := f.registerPatient(t, "amina@example.com")
			f.classifier.report = tc.report

			resp, err := f.xrays.Upload(context.Background(), hw.AccountID, uploadRequest(patient.ID, "chest.png", "png"))
			require.NoError(t, err)
			assert.Equal(t, string(tc.want), resp.Xray.Prediction)
		})
	}
}

func TestUpload_ReuploadOverwritesSameScan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hw := f.createHealthWorker(t, "worker1")
	patient := f.registerPatient(t, "amina@example.com")
	f.xrays.now = clock(
		time.Date(2024, 5, 17, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 18, 10, 0, 0, 0, time.UTC),
	)

	first, err := f.xrays.Upload(ctx, hw.AccountID, uploadRequest(patient.ID, "first.png", "one"))
	require.NoError(t, err)

	f.classifier.report = "Prediction: Normal, no signs of pneumonia."
	second, err := f.xrays.Upload(ctx, hw.AccountID, uploadRequest(patient.ID, "second.png", "two"))
	require.NoError(t, err)

	assert.True(t, second.Updated)
	assert.Equal(t, first.Xray.ID, second.Xray.ID)
	assert.Equal(t, int64(1), f.count(t, &entity.Xray{}))

	var stored entity.Xray
	require.NoError(t, f.db.First(&stored, first.Xray.ID).Error)
	assert.Equal(t, "20240518100000_img2_second.png", stored.ImagePath)
	assert.Equal(t, entity.PredictionNormal, stored.Prediction)
	assert.True(t, stored.UploadedAt.Equal(time.Date(2024, 5, 18, 10, 0, 0, 0, time.UTC)))

	// The replaced image is removed.
	assert.Equal(t, []string{"20240518100000_img2_second.png"}, f.storedImages(t))
}

func TestUpload_ReuploadReopensReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hw := f.createHealthWorker(t, "worker1")
	expert := f.createExpert(t, "expert1")
	patient := f.registerPatient(t, "amina@example.com")

	first, err := f.xrays.Upload(ctx, hw.AccountID, uploadRequest(patient.ID, "first.png", "one"))
	require.NoError(t, err)
	_, err = f.experts.CreateReport(ctx, expert.AccountID, first.Xray.ID, &dto.CreateReportRequest{Content: "Consolidation confirmed."})
	require.NoError(t, err)

	var reviewed entity.Xray
	require.NoError(t, f.db.First(&reviewed, first.Xray.ID).Error)
	require.Equal(t, entity.XrayStatusReviewed, reviewed.Status)

	second, err := f.xrays.Upload(ctx, hw.AccountID, uploadRequest(patient.ID, "second.png", "two"))
	require.NoError(t, err)
	assert.Equal(t, string(entity.XrayStatusPending), second.Xray.Status)
	assert.Nil(t, second.Xray.ExpertID)
	assert.Nil(t, second.Xray.ReviewedAt)

	var stored entity.Xray
	require.NoError(t, f.db.First(&stored, first.Xray.ID).Error)
	assert.Equal(t, entity.XrayStatusPending, stored.Status)
	assert.Nil(t, stored.ExpertID)
	assert.Nil(t, stored.ReviewedAt)

	// The earlier report stays on record.
	assert.Equal(t, int64(1), f.count(t, &entity.Report{}))
}

func TestUpload_SameNameSameSecondKeepsBothImages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hw := f.createHealthWorker(t, "worker1")
	amina := f.registerPatient(t, "amina@example.com")
	brian := f.registerPatient(t, "brian@example.com")
	at := time.Date(2024, 5, 17, 9, 3, 7, 0, time.UTC)
	f.xrays.now = clock(at)

	first, err := f.xrays.Upload(ctx, hw.AccountID, uploadRequest(amina.ID, "chest.png", "amina-scan"))
	require.NoError(t, err)
	second, err := f.xrays.Upload(ctx, hw.AccountID, uploadRequest(brian.ID, "chest.png", "brian-scan"))
	require.NoError(t, err)
	assert.NotEqual(t, first.Xray.ImagePath, second.Xray.ImagePath)

	f.classifier.err = errModelDown
	_, err = f.xrays.Upload(ctx, hw.AccountID, uploadRequest(brian.ID, "chest.png", "retry"))
	assert.ErrorIs(t, err, ErrClassificationFailed)

	assert.ElementsMatch(t, []string{first.Xray.ImagePath, second.Xray.ImagePath}, f.storedImages(t))
	for id, want := range map[uint]string{first.Xray.ID: "amina-scan", second.Xray.ID: "brian-scan"} {
		rc, _, err := f.xrays.OpenImage(ctx, id)
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, want, string(data))
	}
}

func TestDiscardImage_KeepsReferencedImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hw := f.createHealthWorker(t, "worker1")
	patient := f.registerPatient(t, "amina@example.com")
	resp, err := f.xrays.Upload(ctx, hw.AccountID, uploadRequest(patient.ID, "chest.png", "png"))
	require.NoError(t, err)

	f.xrays.discardImage(ctx, resp.Xray.ImagePath)
	assert.Equal(t, []string{resp.Xray.ImagePath}, f.storedImages(t))

	require.NoError(t, f.db.Model(&entity.Xray{}).Where("scan_id = ?", resp.Xray.ID).Update("image_path", "elsewhere.png").Error)
	f.xrays.discardImage(ctx, resp.Xray.ImagePath)
	assert.Empty(t, f.storedImages(t))
}

func TestUpload_DifferentWorkerCreatesNewScan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hw1 := f.createHealthWorker(t, "worker1")
	hw2 := f.createHealthWorker(t, "worker2")
	patient := f.registerPatient(t, "amina@example.com")

	first, err := f.xrays.Upload(ctx, hw1.AccountID, uploadRequest(patient.ID, "a.png", "one"))
	require.NoError(t, err)
	second, err := f.xrays.Upload(ctx, hw2.AccountID, uploadRequest(patient.ID, "b.png", "two"))
	require.NoError(t, err)

	assert.NotEqual(t, first.Xray.ID, second.Xray.ID)
	assert.False(t, second.Updated)
	assert.Equal(t, int64(2), f.count(t, &entity.Xray{}))
}

func TestUpload_PatientIDErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hw := f.createHealthWorker(t, "worker1")

	req := uploadRequest(0, "chest.png", "png")
	req.PatientID = ""
	_, err := f.xrays.Upload(ctx, hw.AccountID, req)
	assert.ErrorIs(t, err, ErrPatientIDRequired)

	req.PatientID = "abc"
	_, err = f.xrays.Upload(ctx, hw.AccountID, req)
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = f.xrays.Upload(ctx, hw.AccountID, uploadRequest(999, "chest.png", "png"))
	assert.ErrorIs(t, err, ErrPatientNotFound)

	assert.Zero(t, f.classifier.calls)
	assert.Empty(t, f.storedImages(t))
	assert.Zero(t, f.count(t, &entity.Xray{}))
}

func TestUpload_MissingFile(t *testing.T) {
	f := newFixture(t)
	hw := f.createHealthWorker(t, "worker1")
	patient := f.registerPatient(t, "amina@example.com")

	req := uploadRequest(patient.ID, "", "")
	req.File = nil
	_, err := f.xrays.Upload(context.Background(), hw.AccountID, req)
	assert.ErrorIs(t, err, ErrXrayFileRequired)
}

func TestUpload_RequiresHealthWorkerProfile(t *testing.T) {
	f := newFixture(t)
	patient := f.registerPatient(t, "amina@example.com")

	_, err := f.xrays.Upload(context.Background(), patient.AccountID, uploadRequest(patient.ID, "chest.png", "png"))
	assert.ErrorIs(t, err, ErrHealthWorkerNotFound)
	assert.Empty(t, f.storedImages(t))
}

func TestUpload_ClassifierFailureDiscardsImage(t *testing.T) {
	f := newFixture(t)
	hw := f.createHealthWorker(t, "worker1")
	patient := f.registerPatient(t, "amina@example.com")
	f.classifier.err = errModelDown

	_, err := f.xrays.Upload(context.Background(), hw.AccountID, uploadRequest(patient.ID, "chest.png", "png"))
	assert.ErrorIs(t, err, ErrClassificationFailed)
	assert.Empty(t, f.storedImages(t))
	assert.Zero(t, f.count(t, &entity.Xray{}))
}

func TestGetXray_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.xrays.GetXray(context.Background(), 42)
	assert.ErrorIs(t, err, ErrXrayNotFound)

	_, _, err = f.xrays.OpenImage(context.Background(), 42)
	assert.ErrorIs(t, err, ErrXrayNotFound)
}
