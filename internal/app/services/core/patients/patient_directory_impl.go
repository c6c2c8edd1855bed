package patients

import (
	"context"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/clock"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/pastatus"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// patientNamespace seeds the stable ids of projected patients.
var patientNamespace = uuid.MustParse("6f1c3b52-8a0e-4f0c-9d6e-2b7a41c5e913")

// RollupPA classifies an approved PA by its expiration date. A blank
// expiration on an approved PA counts as active.
func RollupPA(approved bool, expirationDate string, now time.Time, windowDays int) string {
	if !approved {
		return models.PatientPANone
	}
	if strings.TrimSpace(expirationDate) == "" {
		return models.PatientPAActive
	}
	expiresAt, ok := pastatus.ParseDate(expirationDate)
	if !ok {
		return models.PatientPAActive
	}
	if expiresAt.Before(now) {
		return models.PatientPAExpired
	}
	if !expiresAt.After(now.AddDate(0, 0, windowDays)) {
		return models.PatientPAExpiring
	}
	return models.PatientPAActive
}

// rollupPriority picks the patient level status out of several drugs.
// Expiring comes first so the patient shows up for follow-up.
var rollupPriority = map[string]int{
	models.PatientPAExpiring: 0,
	models.PatientPAActive:   1,
	models.PatientPAExpired:  2,
	models.PatientPANone:     3,
}

func NewPatientDirectory(source string, patientClient contracts.PatientClient, referralClient contracts.ClinicReferralClient, clk clock.Clock, expiringWindowDays int, logger *zap.Logger) contracts.PatientDirectory {
	if source == constvars.PatientDirectorySourceBackend {
		return &backendDirectory{
			PatientClient:      patientClient,
			ReferralClient:     referralClient,
			Clock:              clk,
			ExpiringWindowDays: expiringWindowDays,
			Log:                logger,
		}
	}
	return &projectionDirectory{
		ReferralClient:     referralClient,
		Clock:              clk,
		ExpiringWindowDays: expiringWindowDays,
		Log:                logger,
	}
}

// backendDirectory reads the backend patient records. The backend is not
// clinic aware, so a clinic only sees patients it has referred.
type backendDirectory struct {
	PatientClient      contracts.PatientClient
	ReferralClient     contracts.ClinicReferralClient
	Clock              clock.Clock
	ExpiringWindowDays int
	Log                *zap.Logger
}

func (d *backendDirectory) ListPatients(ctx context.Context, clinicName string) ([]models.Patient, error) {
	patients, err := d.PatientClient.ListPatients(ctx)
	if err != nil {
		return nil, err
	}

	var referred map[string]bool
	if clinicName != "" {
		referred, err = d.referredNames(ctx, clinicName)
		if err != nil {
			return nil, err
		}
	}

	now := d.Clock.Now()
	out := make([]models.Patient, 0, len(patients))
	for _, p := range patients {
		if referred != nil && !referred[nameKey(p.FullName())] {
			continue
		}
		out = append(out, d.withRollup(p, now))
	}
	return out, nil
}

func (d *backendDirectory) FindPatientByID(ctx context.Context, clinicName, patientID string) (*models.Patient, error) {
	patient, err := d.PatientClient.FindPatientByID(ctx, patientID)
	if err != nil || patient == nil {
		return nil, err
	}
	if clinicName != "" {
		referred, err := d.referredNames(ctx, clinicName)
		if err != nil {
			return nil, err
		}
		if !referred[nameKey(patient.FullName())] {
			return nil, nil
		}
	}
	rolled := d.withRollup(*patient, d.Clock.Now())
	return &rolled, nil
}

func (d *backendDirectory) referredNames(ctx context.Context, clinicName string) (map[string]bool, error) {
	referrals, err := d.ReferralClient.ListReferrals(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool)
	for _, r := range referrals {
		if r.ClinicName == clinicName {
			names[nameKey(r.PatientName)] = true
		}
	}
	return names, nil
}

// withRollup recomputes the status from drug level PA data when the backend
// sent any, so expiry is always judged against the current clock.
func (d *backendDirectory) withRollup(p models.Patient, now time.Time) models.Patient {
	if len(p.Drugs) == 0 {
		if p.PAStatus == models.PatientPAActive || p.PAStatus == models.PatientPAExpiring || p.PAStatus == models.PatientPAExpired {
			p.PAStatus = RollupPA(true, p.PAExpirationDate, now, d.ExpiringWindowDays)
		}
		if p.PAStatus == "" {
			p.PAStatus = models.PatientPANone
		}
		return p
	}

	best, expiration := models.PatientPANone, ""
	for _, drug := range p.Drugs {
		status := drugStatus(drug)
		rolled := RollupPA(status == models.DrugPAApproved, deref(drug.PAExpirationDate), now, d.ExpiringWindowDays)
		if rollupPriority[rolled] < rollupPriority[best] {
			best, expiration = rolled, deref(drug.PAExpirationDate)
		}
	}
	p.PAStatus = best
	p.PAExpirationDate = expiration
	return p
}

// projectionDirectory derives patients from referrals, one patient per
// name and date of birth.
type projectionDirectory struct {
	ReferralClient     contracts.ClinicReferralClient
	Clock              clock.Clock
	ExpiringWindowDays int
	Log                *zap.Logger
}

func (d *projectionDirectory) ListPatients(ctx context.Context, clinicName string) ([]models.Patient, error) {
	referrals, err := d.ReferralClient.ListReferrals(ctx)
	if err != nil {
		return nil, err
	}
	patients := d.project(referrals, clinicName)

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	d.Log.Debug("projectionDirectory.ListPatients projected",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(patients)),
	)
	return patients, nil
}

func (d *projectionDirectory) FindPatientByID(ctx context.Context, clinicName, patientID string) (*models.Patient, error) {
	patients, err := d.ListPatients(ctx, clinicName)
	if err != nil {
		return nil, err
	}
	for i := range patients {
		if patients[i].ID == patientID {
			return &patients[i], nil
		}
	}
	return nil, nil
}

func (d *projectionDirectory) project(referrals []models.Referral, clinicName string) []models.Patient {
	groups := make(map[string][]models.Referral)
	order := make([]string, 0)
	for _, r := range referrals {
		if clinicName != "" && r.ClinicName != clinicName {
			continue
		}
		if strings.TrimSpace(r.PatientName) == "" {
			continue
		}
		key := nameKey(r.PatientName) + "|" + strings.TrimSpace(r.PatientDOB)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	now := d.Clock.Now()
	patients := make([]models.Patient, 0, len(order))
	for _, key := range order {
		patients = append(patients, d.buildPatient(key, groups[key], now))
	}
	return patients
}

func (d *projectionDirectory) buildPatient(key string, referrals []models.Referral, now time.Time) models.Patient {
	sort.SliceStable(referrals, func(i, j int) bool {
		return createdAt(referrals[i]).After(createdAt(referrals[j]))
	})
	latest := referrals[0]

	first, last := splitName(latest.PatientName)
	patient := models.Patient{
		ID:               uuid.NewSHA1(patientNamespace, []byte(key)).String(),
		FirstName:        first,
		LastName:         last,
		DOB:              latest.PatientDOB,
		Phone:            latest.PatientPhone,
		Email:            latest.PatientEmail,
		LastDrug:         latest.Drug,
		LastReferralDate: latest.CreatedAt,
		ReferralCount:    len(referrals),
		PAStatus:         models.PatientPANone,
		Drugs:            make([]models.PatientDrug, 0, len(referrals)),
		ReferralIDs:      make([]string, 0, len(referrals)),
	}
	if x := latest.ExtractedData; x != nil {
		patient.Gender = x.Patient.Gender
		patient.LastDosage = x.Clinical.Dosing
		patient.InsuranceType = x.Insurance.PrimaryInsuranceName
		patient.InsuranceNotes = x.Insurance.Notes
	}

	for _, r := range referrals {
		patient.ReferralIDs = append(patient.ReferralIDs, r.ID)

		approved := strings.EqualFold(strings.TrimSpace(r.RawPAStatus()), models.DrugPAApproved)
		drug := models.PatientDrug{
			ID:               r.ID,
			PatientID:        patient.ID,
			DrugName:         r.Drug,
			IsActive:         approved && !pastatus.IsExpired(r.RawPAExpirationDate(), now),
			PAStatus:         r.PAStatus,
			PAExpirationDate: r.PAExpirationDate,
			CreatedAt:        r.CreatedAt,
		}
		if r.ExtractedData != nil {
			drug.Dosage = r.ExtractedData.Clinical.Dosing
			drug.Frequency = r.ExtractedData.Clinical.Frequency
		}
		patient.Drugs = append(patient.Drugs, drug)

		if !r.PARequired {
			continue
		}
		rolled := RollupPA(approved, r.RawPAExpirationDate(), now, d.ExpiringWindowDays)
		if rollupPriority[rolled] < rollupPriority[patient.PAStatus] {
			patient.PAStatus = rolled
			patient.PAExpirationDate = r.RawPAExpirationDate()
		}
	}
	return patient
}

func drugStatus(drug models.PatientDrug) string {
	return strings.ToLower(strings.TrimSpace(deref(drug.PAStatus)))
}

func createdAt(r models.Referral) time.Time {
	t, _ := pastatus.ParseDate(r.CreatedAt)
	return t
}

func nameKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func splitName(name string) (string, string) {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	}
	return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1]
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
