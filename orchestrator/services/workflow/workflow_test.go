package workflow_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/authority"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/envelope"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/fsm/fsm"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/fsm/state_machines/signatory_fsm"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/journal"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/kyc"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/mocks/authorityMocks"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/mocks/envelopeMocks"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/mocks/journalMocks"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/mocks/kycMocks"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/mocks/moduleMocks"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/mocks/repoMocks"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/mocks/serviceMocks"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/modules/logger"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/modules/otpguard"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/repositories/ledger"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services/artifact"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services/workflow"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/types"
)

type engineMocks struct {
	sessionRepo *repoMocks.MockSessionRepo
	ledgerRepo  *repoMocks.MockLedgerRepo
	journal     *journalMocks.MockJournal
	guard       *moduleMocks.MockGuard
	authority   *authorityMocks.MockService
	envelope    *envelopeMocks.MockService
	kyc         *kycMocks.MockService
	placement   *serviceMocks.MockPlacementService
	artifacts   *serviceMocks.MockStore
}

func newTestEngine(ctrl *gomock.Controller) (*workflow.BaseWorkflowService, *engineMocks) {
	m := &engineMocks{
		sessionRepo: repoMocks.NewMockSessionRepo(ctrl),
		ledgerRepo:  repoMocks.NewMockLedgerRepo(ctrl),
		journal:     journalMocks.NewMockJournal(ctrl),
		guard:       moduleMocks.NewMockGuard(ctrl),
		authority:   authorityMocks.NewMockService(ctrl),
		envelope:    envelopeMocks.NewMockService(ctrl),
		kyc:         kycMocks.NewMockService(ctrl),
		placement:   serviceMocks.NewMockPlacementService(ctrl),
		artifacts:   serviceMocks.NewMockStore(ctrl),
	}

	sp := services.ServiceProvider{}
	sp.SetLogger(logger.NewLogger("workflow_test"))
	sp.SetSessionRepo(m.sessionRepo)
	sp.SetLedgerRepo(m.ledgerRepo)
	sp.SetJournal(m.journal)
	sp.SetOTPGuard(m.guard)
	sp.SetAuthority(m.authority)
	sp.SetEnvelope(m.envelope)
	sp.SetKYC(m.kyc)
	sp.SetPlacement(m.placement)
	sp.SetArtifacts(m.artifacts)

	return workflow.NewWorkflowService(&sp, 72*time.Hour), m
}

func newTestSession(firstState, secondState fsm.State) *types.SigningSession {
	now := time.Now().UTC()
	return &types.SigningSession{
		ID:         "5b54ff63-69b1-41f5-8f13-5e6bd477b098",
		BatchID:    "BATCH-88",
		TemplateID: "loan-agreement-v3",
		ContractID: "CTR-55",
		Signatories: []types.Signatory{
			{
				Role:        types.RolePrimaryBorrower,
				FullName:    "Aminah binti Rahim",
				Contact:     "aminah@example.com",
				SignerID:    "SG-AMINAH",
				SubmitterID: "sbm_1",
				Status:      firstState,
			},
			{
				Role:        types.RoleWitness,
				FullName:    "Farid bin Osman",
				Contact:     "farid@example.com",
				SignerID:    "SG-FARID",
				SubmitterID: "sbm_2",
				Status:      secondState,
			},
		},
		CurrentIdx:       0,
		Total:            2,
		OriginalArtifact: "https://envelope.internal/docs/ctr55.pdf",
		Status:           types.SessionInProgress,
		CreatedAt:        now,
		ExpiresAt:        now.Add(72 * time.Hour),
	}
}

// signRequestWith matches a SignRequest carrying the expected base bytes
// and one-time code.
type signRequestWith struct {
	pdf  []byte
	code string
}

func (m signRequestWith) Matches(x interface{}) bool {
	r, ok := x.(*authority.SignRequest)
	return ok && bytes.Equal(r.PDF, m.pdf) && r.Code == m.code
}

func (m signRequestWith) String() string {
	return fmt.Sprintf("sign request with code %s and %d base bytes", m.code, len(m.pdf))
}

// eventOfKind matches journal events by kind.
type eventOfKind journal.Kind

func (k eventOfKind) Matches(x interface{}) bool {
	e, ok := x.(journal.Event)
	return ok && e.Kind == journal.Kind(k)
}

func (k eventOfKind) String() string {
	return fmt.Sprintf("journal event of kind %s", string(k))
}

func TestWorkflowService_Intercept(t *testing.T) {
	var (
		ctx  = context.Background()
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc, m := newTestEngine(ctrl)

	m.envelope.EXPECT().GetSubmitter(gomock.Any(), "sbm_1").Times(1).Return(&envelope.Submitter{
		ID:           "sbm_1",
		SubmissionID: "smn_9",
	}, nil)
	m.envelope.EXPECT().GetSubmission(gomock.Any(), "smn_9").Times(1).Return(&envelope.Submission{
		ID:          "smn_9",
		BatchID:     "BATCH-88",
		TemplateID:  "loan-agreement-v3",
		ContractID:  "CTR-55",
		DocumentURL: "https://envelope.internal/docs/ctr55.pdf",
		Submitters: []envelope.Submitter{
			{ID: "sbm_1", Role: "primary-borrower", Name: "Aminah binti Rahim", Email: "aminah@example.com", SignerID: "SG-AMINAH"},
			{ID: "sbm_2", Role: "witness", Name: "Farid bin Osman", Email: "farid@example.com", SignerID: "SG-FARID"},
		},
	}, nil)
	m.sessionRepo.EXPECT().GetOrCreate(gomock.Any()).Times(1).DoAndReturn(
		func(fresh *types.SigningSession) (*types.SigningSession, bool, error) {
			return fresh, true, nil
		})
	m.sessionRepo.EXPECT().Save(gomock.Any()).AnyTimes().Return(nil)
	m.envelope.EXPECT().SuppressCompletion(gomock.Any(), "sbm_1").Times(1).Return(nil)
	m.authority.EXPECT().CertificateStatus(gomock.Any(), "SG-AMINAH").Times(1).Return(&authority.Result{
		StatusCode: authority.StatusSuccess,
		CertStatus: authority.CertStatusValid,
	}, nil)
	m.authority.EXPECT().RequestOTP(gomock.Any(), &authority.OTPRequest{
		SignerID:   "SG-AMINAH",
		Contact:    "aminah@example.com",
		DocumentID: "CTR-55",
	}).Times(1).Return(&authority.Result{StatusCode: authority.StatusSuccess}, nil)
	m.journal.EXPECT().Append(eventOfKind(journal.KindSessionCreated)).Times(1).Return(nil)
	m.journal.EXPECT().Append(eventOfKind(journal.KindSignatoryIntercepted)).Times(1).Return(nil)
	m.journal.EXPECT().Append(eventOfKind(journal.KindOTPSent)).Times(1).Return(nil)

	sess, err := svc.Intercept(ctx, "sbm_1")
	req.NoError(err)
	req.Equal("BATCH-88", sess.BatchID)
	req.Equal(2, sess.Total)
	req.Equal(signatory_fsm.StateOTPSent, sess.Signatories[0].Status)
	req.Equal(signatory_fsm.StatePending, sess.Signatories[1].Status)
	req.Equal(authority.CertStatusValid, sess.Signatories[0].CertStatus)
}

func TestWorkflowService_Intercept_InvalidCertificateStopsBeforeCode(t *testing.T) {
	var (
		ctx  = context.Background()
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc, m := newTestEngine(ctrl)

	m.envelope.EXPECT().GetSubmitter(gomock.Any(), "sbm_1").Times(1).Return(&envelope.Submitter{
		ID: "sbm_1", SubmissionID: "smn_9",
	}, nil)
	m.envelope.EXPECT().GetSubmission(gomock.Any(), "smn_9").Times(1).Return(&envelope.Submission{
		ID:         "smn_9",
		BatchID:    "BATCH-88",
		TemplateID: "loan-agreement-v3",
		ContractID: "CTR-55",
		Submitters: []envelope.Submitter{
			{ID: "sbm_1", Role: "primary-borrower", Name: "Aminah binti Rahim", Email: "aminah@example.com", SignerID: "SG-AMINAH"},
		},
	}, nil)
	m.sessionRepo.EXPECT().GetOrCreate(gomock.Any()).Times(1).DoAndReturn(
		func(fresh *types.SigningSession) (*types.SigningSession, bool, error) {
			return fresh, true, nil
		})
	m.sessionRepo.EXPECT().Save(gomock.Any()).AnyTimes().Return(nil)
	m.envelope.EXPECT().SuppressCompletion(gomock.Any(), "sbm_1").Times(1).Return(nil)
	m.authority.EXPECT().CertificateStatus(gomock.Any(), "SG-AMINAH").Times(1).Return(&authority.Result{
		StatusCode: authority.StatusSuccess,
		CertStatus: authority.CertStatusRevoked,
	}, nil)
	m.journal.EXPECT().Append(gomock.Any()).AnyTimes().Return(nil)

	// No RequestOTP expectation: issuance must not run for a revoked
	// certificate.
	sess, err := svc.Intercept(ctx, "sbm_1")
	req.NoError(err)
	req.Equal(signatory_fsm.StateIntercepted, sess.Signatories[0].Status)
	req.Equal(authority.CertStatusRevoked, sess.Signatories[0].CertStatus)
}

func TestWorkflowService_Intercept_LateDuplicateLeavesStateAlone(t *testing.T) {
	var (
		ctx  = context.Background()
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc, m := newTestEngine(ctrl)
	stored := newTestSession(signatory_fsm.StateOTPSent, signatory_fsm.StatePending)

	m.envelope.EXPECT().GetSubmitter(gomock.Any(), "sbm_1").Times(1).Return(&envelope.Submitter{
		ID: "sbm_1", SubmissionID: "smn_9",
	}, nil)
	m.envelope.EXPECT().GetSubmission(gomock.Any(), "smn_9").Times(1).Return(&envelope.Submission{
		ID:         "smn_9",
		BatchID:    "BATCH-88",
		TemplateID: "loan-agreement-v3",
		ContractID: "CTR-55",
		Submitters: []envelope.Submitter{
			{ID: "sbm_1", Role: "primary-borrower", SignerID: "SG-AMINAH"},
			{ID: "sbm_2", Role: "witness", SignerID: "SG-FARID"},
		},
	}, nil)
	m.sessionRepo.EXPECT().GetOrCreate(gomock.Any()).Times(1).Return(stored, false, nil)

	// No authority, no suppress, no saves: the signatory is already past
	// interception.
	sess, err := svc.Intercept(ctx, "sbm_1")
	req.NoError(err)
	req.Equal(signatory_fsm.StateOTPSent, sess.Signatories[0].Status)
}

func TestWorkflowService_SubmitCode(t *testing.T) {
	var (
		ctx  = context.Background()
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc, m := newTestEngine(ctrl)
	sess := newTestSession(signatory_fsm.StateOTPSent, signatory_fsm.StatePending)

	basePDF := []byte("%PDF-1.7 original")
	signedPDF := []byte("%PDF-1.7 original + signature")
	rect := authority.SignRect{X1: 385.56, Y1: 110.88, X2: 550.8, Y2: 190.08, Page: 4}

	m.sessionRepo.EXPECT().Get("BATCH-88").Times(1).Return(sess, nil)
	m.guard.EXPECT().TryConsume(otpguard.Key{
		DocumentID: "CTR-55", SignerID: "SG-AMINAH", Code: "123456",
	}).Times(1).Return(true)
	m.ledgerRepo.EXPECT().Get(gomock.Any(), "CTR-55").Times(1).Return(nil, ledger.ErrRecordNotFound)
	m.envelope.EXPECT().Download(gomock.Any(), "https://envelope.internal/docs/ctr55.pdf").Times(1).Return(basePDF, nil)
	m.placement.EXPECT().Resolve(types.RolePrimaryBorrower, "loan-agreement-v3", basePDF).Times(1).Return(rect, nil)
	m.sessionRepo.EXPECT().Save(gomock.Any()).AnyTimes().Return(nil)
	m.authority.EXPECT().SignDocument(gomock.Any(), signRequestWith{pdf: basePDF, code: "123456"}).Times(1).Return(&authority.Result{
		StatusCode: authority.StatusSuccess,
		TxnID:      "TXN-771",
		SignedPDF:  signedPDF,
	}, nil)
	m.artifacts.EXPECT().Write("CTR-55_signed.pdf", signedPDF).Times(1).Return(&artifact.StoredArtifact{
		Path: "/var/cosign/artifacts/CTR-55_signed.pdf",
		Hash: "2f7a",
		Size: int64(len(signedPDF)),
	}, nil)
	m.ledgerRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(
		func(_ context.Context, record *types.SignedArtifactRecord) error {
			req.Equal("CTR-55", record.ContractID)
			req.Equal("TXN-771", record.AuthorityTxnID)
			req.Equal("2f7a", record.ContentHash)
			req.Equal(types.ArtifactAuthoritySigned, record.Status)
			return nil
		})
	m.journal.EXPECT().Append(eventOfKind(journal.KindArtifactSigned)).Times(1).Return(nil)
	m.journal.EXPECT().Append(gomock.Any()).AnyTimes().Return(nil)

	outcome, err := svc.SubmitCode(ctx, "BATCH-88", "SG-AMINAH", "123456")
	req.NoError(err)
	req.Equal("TXN-771", outcome.AuthorityTxnID)
	req.False(outcome.LedgerDegraded)
	req.Equal(signatory_fsm.StateSigned, sess.Signatories[0].Status)
	req.Equal(1, sess.CurrentIdx)
	req.Equal(types.SessionInProgress, sess.Status)
	req.Equal("CTR-55_signed.pdf", sess.CurrentArtifact)
}

func TestWorkflowService_SubmitCode_ChainsOntoPriorSignature(t *testing.T) {
	var (
		ctx  = context.Background()
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc, m := newTestEngine(ctrl)
	sess := newTestSession(signatory_fsm.StateSigned, signatory_fsm.StateOTPSent)
	sess.CurrentIdx = 1

	previouslySigned := []byte("%PDF-1.7 original + first signature")
	twiceSigned := []byte("%PDF-1.7 original + both signatures")

	m.sessionRepo.EXPECT().Get("BATCH-88").Times(1).Return(sess, nil)
	m.guard.EXPECT().TryConsume(gomock.Any()).Times(1).Return(true)
	m.ledgerRepo.EXPECT().Get(gomock.Any(), "CTR-55").Times(1).Return(&types.SignedArtifactRecord{
		ContractID: "CTR-55",
		Status:     types.ArtifactAuthoritySigned,
	}, nil)
	// The base must be the stored artifact, not a fresh download.
	m.artifacts.EXPECT().Read("CTR-55_signed.pdf").Times(1).Return(previouslySigned, nil)
	m.placement.EXPECT().Resolve(types.RoleWitness, "loan-agreement-v3", previouslySigned).Times(1).
		Return(authority.SignRect{X1: 61.2, Y1: 110.88, X2: 226.44, Y2: 190.08, Page: 4}, nil)
	m.sessionRepo.EXPECT().Save(gomock.Any()).AnyTimes().Return(nil)
	m.authority.EXPECT().SignDocument(gomock.Any(), signRequestWith{pdf: previouslySigned, code: "654321"}).Times(1).
		Return(&authority.Result{
			StatusCode: authority.StatusSuccess,
			TxnID:      "TXN-772",
			SignedPDF:  twiceSigned,
		}, nil)
	m.artifacts.EXPECT().Write("CTR-55_signed.pdf", twiceSigned).Times(1).Return(&artifact.StoredArtifact{
		Path: "/var/cosign/artifacts/CTR-55_signed.pdf",
		Hash: "9c1d",
		Size: int64(len(twiceSigned)),
	}, nil)
	m.ledgerRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Times(1).Return(nil)
	m.journal.EXPECT().Append(eventOfKind(journal.KindSessionCompleted)).Times(1).Return(nil)
	m.journal.EXPECT().Append(gomock.Any()).AnyTimes().Return(nil)

	outcome, err := svc.SubmitCode(ctx, "BATCH-88", "SG-FARID", "654321")
	req.NoError(err)
	req.Equal("TXN-772", outcome.AuthorityTxnID)
	req.Equal(types.SessionAllSigned, sess.Status)
	req.Equal(signatory_fsm.StateSigned, sess.Signatories[1].Status)
}

func TestWorkflowService_SubmitCode_ReplayRejectedBeforeAnyNetworkCall(t *testing.T) {
	var (
		ctx  = context.Background()
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc, m := newTestEngine(ctrl)
	sess := newTestSession(signatory_fsm.StateOTPSent, signatory_fsm.StatePending)

	m.sessionRepo.EXPECT().Get("BATCH-88").Times(1).Return(sess, nil)
	m.guard.EXPECT().TryConsume(gomock.Any()).Times(1).Return(false)

	// No ledger, envelope, placement or authority expectations: the replay
	// must be rejected before any of them is reached.
	outcome, err := svc.SubmitCode(ctx, "BATCH-88", "SG-AMINAH", "123456")
	req.Nil(outcome)

	var businessErr *workflow.BusinessError
	req.ErrorAs(err, &businessErr)
	req.Equal("code_replayed", businessErr.Code)
	req.Equal(signatory_fsm.StateOTPSent, sess.Signatories[0].Status)
}

func TestWorkflowService_SubmitCode_InvalidCodeReleasesGuardEntry(t *testing.T) {
	var (
		ctx  = context.Background()
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc, m := newTestEngine(ctrl)
	sess := newTestSession(signatory_fsm.StateOTPSent, signatory_fsm.StatePending)
	basePDF := []byte("%PDF-1.7 original")

	key := otpguard.Key{DocumentID: "CTR-55", SignerID: "SG-AMINAH", Code: "000000"}
	m.sessionRepo.EXPECT().Get("BATCH-88").Times(1).Return(sess, nil)
	m.guard.EXPECT().TryConsume(key).Times(1).Return(true)
	m.ledgerRepo.EXPECT().Get(gomock.Any(), "CTR-55").Times(1).Return(nil, ledger.ErrRecordNotFound)
	m.envelope.EXPECT().Download(gomock.Any(), gomock.Any()).Times(1).Return(basePDF, nil)
	m.placement.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).Return(authority.SignRect{Page: 4}, nil)
	m.sessionRepo.EXPECT().Save(gomock.Any()).AnyTimes().Return(nil)
	m.authority.EXPECT().SignDocument(gomock.Any(), gomock.Any()).Times(1).Return(&authority.Result{
		StatusCode: authority.StatusInvalidOTP,
		Message:    "the submitted code does not match",
	}, nil)
	m.guard.EXPECT().Release(key).Times(1)
	m.journal.EXPECT().Append(eventOfKind(journal.KindSigningFailed)).Times(1).Return(nil)

	outcome, err := svc.SubmitCode(ctx, "BATCH-88", "SG-AMINAH", "000000")
	req.Nil(outcome)

	var businessErr *workflow.BusinessError
	req.ErrorAs(err, &businessErr)
	req.Equal(authority.StatusInvalidOTP, businessErr.Code)
	req.Equal("the submitted code does not match", businessErr.Message)

	// Retryable with a fresh code, nothing terminal happened.
	req.Equal(signatory_fsm.StateReadyToSign, sess.Signatories[0].Status)
	req.Equal(types.SessionInProgress, sess.Status)
}

func TestWorkflowService_SubmitCode_CertRejectionIsTerminal(t *testing.T) {
	var (
		ctx  = context.Background()
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc, m := newTestEngine(ctrl)
	sess := newTestSession(signatory_fsm.StateOTPSent, signatory_fsm.StatePending)

	m.sessionRepo.EXPECT().Get("BATCH-88").Times(1).Return(sess, nil)
	m.guard.EXPECT().TryConsume(gomock.Any()).Times(1).Return(true)
	m.ledgerRepo.EXPECT().Get(gomock.Any(), "CTR-55").Times(1).Return(nil, ledger.ErrRecordNotFound)
	m.envelope.EXPECT().Download(gomock.Any(), gomock.Any()).Times(1).Return([]byte("%PDF"), nil)
	m.placement.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).Return(authority.SignRect{Page: 1}, nil)
	m.sessionRepo.EXPECT().Save(gomock.Any()).AnyTimes().Return(nil)
	m.authority.EXPECT().SignDocument(gomock.Any(), gomock.Any()).Times(1).Return(&authority.Result{
		StatusCode: authority.StatusCertNotValid,
		Message:    "certificate revoked since issuance",
	}, nil)
	m.journal.EXPECT().Append(eventOfKind(journal.KindSigningFailed)).Times(1).Return(nil)

	// No Release expectation: the code was fine, the certificate was not.
	outcome, err := svc.SubmitCode(ctx, "BATCH-88", "SG-AMINAH", "123456")
	req.Nil(outcome)

	var businessErr *workflow.BusinessError
	req.ErrorAs(err, &businessErr)
	req.Equal(authority.StatusCertNotValid, businessErr.Code)
	req.Equal(signatory_fsm.StateFailed, sess.Signatories[0].Status)
	req.Equal(types.SessionFailed, sess.Status)
}

func TestWorkflowService_SubmitCode_LedgerFailureIsPartialSuccess(t *testing.T) {
	var (
		ctx  = context.Background()
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc, m := newTestEngine(ctrl)
	sess := newTestSession(signatory_fsm.StateOTPSent, signatory_fsm.StatePending)
	signedPDF := []byte("%PDF signed")

	m.sessionRepo.EXPECT().Get("BATCH-88").Times(1).Return(sess, nil)
	m.guard.EXPECT().TryConsume(gomock.Any()).Times(1).Return(true)
	m.ledgerRepo.EXPECT().Get(gomock.Any(), "CTR-55").Times(1).Return(nil, ledger.ErrRecordNotFound)
	m.envelope.EXPECT().Download(gomock.Any(), gomock.Any()).Times(1).Return([]byte("%PDF"), nil)
	m.placement.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).Return(authority.SignRect{Page: 1}, nil)
	m.sessionRepo.EXPECT().Save(gomock.Any()).AnyTimes().Return(nil)
	m.authority.EXPECT().SignDocument(gomock.Any(), gomock.Any()).Times(1).Return(&authority.Result{
		StatusCode: authority.StatusSuccess,
		TxnID:      "TXN-773",
		SignedPDF:  signedPDF,
	}, nil)
	m.artifacts.EXPECT().Write(gomock.Any(), signedPDF).Times(1).Return(&artifact.StoredArtifact{
		Path: "/var/cosign/artifacts/CTR-55_signed.pdf",
		Hash: "77aa",
		Size: 11,
	}, nil)
	m.ledgerRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Times(1).Return(errors.New("connection refused"))
	m.journal.EXPECT().Append(eventOfKind(journal.KindLedgerWriteFailed)).Times(1).Return(nil)
	m.journal.EXPECT().Append(gomock.Any()).AnyTimes().Return(nil)

	outcome, err := svc.SubmitCode(ctx, "BATCH-88", "SG-AMINAH", "123456")
	req.NoError(err)
	req.True(outcome.LedgerDegraded)
	req.Equal(signatory_fsm.StateSigned, sess.Signatories[0].Status)
}

func TestWorkflowService_SubmitCode_OutOfTurn(t *testing.T) {
	var (
		ctx  = context.Background()
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc, m := newTestEngine(ctrl)
	sess := newTestSession(signatory_fsm.StateOTPSent, signatory_fsm.StateOTPSent)

	m.sessionRepo.EXPECT().Get("BATCH-88").Times(1).Return(sess, nil)

	// The witness holds position 1 while position 0 is still unsigned.
	outcome, err := svc.SubmitCode(ctx, "BATCH-88", "SG-FARID", "123456")
	req.Nil(outcome)

	var businessErr *workflow.BusinessError
	req.ErrorAs(err, &businessErr)
	req.Equal("not_signers_turn", businessErr.Code)
}

func TestWorkflowService_SubmitCode_SessionErrors(t *testing.T) {
	var (
		ctx  = context.Background()
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc, m := newTestEngine(ctrl)

	expired := newTestSession(signatory_fsm.StateOTPSent, signatory_fsm.StatePending)
	expired.ExpiresAt = time.Now().UTC().Add(-time.Hour)
	m.sessionRepo.EXPECT().Get("BATCH-88").Times(1).Return(expired, nil)

	_, err := svc.SubmitCode(ctx, "BATCH-88", "SG-AMINAH", "123456")
	req.ErrorIs(err, types.ErrSessionExpired)

	completed := newTestSession(signatory_fsm.StateSigned, signatory_fsm.StateSigned)
	completed.Status = types.SessionAllSigned
	m.sessionRepo.EXPECT().Get("BATCH-88").Times(1).Return(completed, nil)

	_, err = svc.SubmitCode(ctx, "BATCH-88", "SG-AMINAH", "123456")
	req.ErrorIs(err, types.ErrSessionCompleted)

	m.sessionRepo.EXPECT().Get("BATCH-404").Times(1).Return(nil, types.ErrSessionNotFound)

	_, err = svc.SubmitCode(ctx, "BATCH-404", "SG-AMINAH", "123456")
	req.ErrorIs(err, types.ErrSessionNotFound)
}

func TestWorkflowService_RequestCode_Resend(t *testing.T) {
	var (
		ctx  = context.Background()
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc, m := newTestEngine(ctrl)
	sess := newTestSession(signatory_fsm.StateOTPSent, signatory_fsm.StatePending)

	m.sessionRepo.EXPECT().Get("BATCH-88").Times(1).Return(sess, nil)
	m.authority.EXPECT().RequestOTP(gomock.Any(), gomock.Any()).Times(1).Return(&authority.Result{
		StatusCode: authority.StatusSuccess,
	}, nil)
	m.sessionRepo.EXPECT().Save(gomock.Any()).AnyTimes().Return(nil)
	m.journal.EXPECT().Append(eventOfKind(journal.KindOTPSent)).Times(1).Return(nil)

	req.NoError(svc.RequestCode(ctx, "BATCH-88", "SG-AMINAH"))
	req.Equal(signatory_fsm.StateOTPSent, sess.Signatories[0].Status)
}

func TestWorkflowService_EnrollSigner(t *testing.T) {
	var (
		ctx  = context.Background()
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc, m := newTestEngine(ctrl)
	sess := newTestSession(signatory_fsm.StateIntercepted, signatory_fsm.StatePending)
	sess.Signatories[0].CertStatus = authority.CertStatusNotFound

	m.sessionRepo.EXPECT().Get("BATCH-88").Times(1).Return(sess, nil)
	m.kyc.EXPECT().FaceMatch(gomock.Any(), "https://kyc.internal/ic_front.jpg", "https://kyc.internal/selfie.jpg").
		Times(1).Return(0.82, nil)
	m.kyc.EXPECT().Liveness(gomock.Any(), "https://kyc.internal/selfie.jpg").Times(1).Return(0.92, nil)
	m.kyc.EXPECT().OCR(gomock.Any(), "https://kyc.internal/ic_front.jpg", "").Times(1).Return(&kyc.OCRFields{
		Name:     "AMINAH BINTI RAHIM",
		ICNumber: "900101-14-5678",
		DOB:      "1990-01-01",
		Address:  "NO 12 JALAN MERDEKA KUALA LUMPUR",
	}, nil)
	m.authority.EXPECT().EnrollCertificate(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(
		func(_ context.Context, request *authority.EnrollmentRequest) (*authority.Result, error) {
			req.Equal("SG-AMINAH", request.SignerID)
			req.NotNil(request.Evidence)
			req.InDelta(0.82, request.Evidence.FaceMatchScore, 1e-9)
			req.InDelta(0.92, request.Evidence.LivenessScore, 1e-9)
			req.Equal("900101-14-5678", request.Evidence.OCRFields["ic_number"])
			return &authority.Result{StatusCode: authority.StatusSuccess}, nil
		})
	m.journal.EXPECT().Append(eventOfKind(journal.KindEnrollmentStarted)).Times(1).Return(nil)

	err := svc.EnrollSigner(ctx, &workflow.EnrollmentEntry{
		BatchID:    "BATCH-88",
		SignerID:   "SG-AMINAH",
		ICFrontURL: "https://kyc.internal/ic_front.jpg",
		SelfieURL:  "https://kyc.internal/selfie.jpg",
	})

	var businessErr *workflow.BusinessError
	req.ErrorAs(err, &businessErr)
	req.Equal("enrollment_initiated", businessErr.Code)
}

func TestWorkflowService_ListArtifacts(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc, m := newTestEngine(ctrl)
	sess := newTestSession(signatory_fsm.StateSigned, signatory_fsm.StateOTPSent)

	m.sessionRepo.EXPECT().Get("BATCH-88").Times(1).Return(sess, nil)
	m.artifacts.EXPECT().List("").Times(1).Return([]string{
		"1718000000_BATCH-88_SG-AMINAH.pdf",
		"1718000099_BATCH-77_SG-OTHER.pdf",
		"CTR-55_signed.pdf",
		"CTR-99_signed.pdf",
	}, nil)

	names, err := svc.ListArtifacts("BATCH-88")
	req.NoError(err)
	req.Equal([]string{"1718000000_BATCH-88_SG-AMINAH.pdf", "CTR-55_signed.pdf"}, names)
}

func TestWorkflowService_VerifyArtifact(t *testing.T) {
	var (
		ctx  = context.Background()
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc, m := newTestEngine(ctrl)
	sess := newTestSession(signatory_fsm.StateSigned, signatory_fsm.StateSigned)
	sess.CurrentIdx = 2
	sess.Status = types.SessionAllSigned

	signedBytes := []byte("%PDF-1.7 original + both signatures")

	m.sessionRepo.EXPECT().Get("BATCH-88").Times(1).Return(sess, nil)
	m.ledgerRepo.EXPECT().Get(gomock.Any(), "CTR-55").Times(1).Return(&types.SignedArtifactRecord{
		ContractID: "CTR-55",
		SignerID:   "SG-FARID",
		Status:     types.ArtifactAuthoritySigned,
	}, nil)
	m.artifacts.EXPECT().Read("CTR-55_signed.pdf").Times(1).Return(signedBytes, nil)
	m.authority.EXPECT().VerifySignature(gomock.Any(), signedBytes).Times(1).Return(&authority.Result{
		StatusCode: authority.StatusSuccess,
		TxnID:      "TXN-790",
	}, nil)
	m.artifacts.EXPECT().Write(gomock.Any(), signedBytes).Times(1).DoAndReturn(
		func(name string, data []byte) (*artifact.StoredArtifact, error) {
			req.True(strings.HasSuffix(name, "_BATCH-88_SG-FARID.pdf"), "export name %q", name)
			return &artifact.StoredArtifact{
				Path: "/var/cosign/artifacts/" + name,
				Hash: "9c1d",
				Size: int64(len(data)),
			}, nil
		})
	m.journal.EXPECT().Append(eventOfKind(journal.KindArtifactVerified)).Times(1).Return(nil)

	outcome, err := svc.VerifyArtifact(ctx, "BATCH-88")
	req.NoError(err)
	req.True(strings.HasSuffix(outcome.ExportName, "_BATCH-88_SG-FARID.pdf"))
	req.Equal("9c1d", outcome.ContentHash)
	req.Equal("TXN-790", outcome.TxnID)
}

func TestWorkflowService_VerifyArtifact_NothingSignedYet(t *testing.T) {
	var (
		ctx  = context.Background()
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc, m := newTestEngine(ctrl)
	sess := newTestSession(signatory_fsm.StateOTPSent, signatory_fsm.StatePending)

	m.sessionRepo.EXPECT().Get("BATCH-88").Times(1).Return(sess, nil)
	m.ledgerRepo.EXPECT().Get(gomock.Any(), "CTR-55").Times(1).Return(nil, ledger.ErrRecordNotFound)

	// No store, authority or journal expectations: nothing to verify means
	// nothing else is reached.
	outcome, err := svc.VerifyArtifact(ctx, "BATCH-88")
	req.Nil(outcome)

	var businessErr *workflow.BusinessError
	req.ErrorAs(err, &businessErr)
	req.Equal("nothing_signed", businessErr.Code)
}

func TestWorkflowService_VerifyArtifact_RejectionWritesNoExport(t *testing.T) {
	var (
		ctx  = context.Background()
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	svc, m := newTestEngine(ctrl)
	sess := newTestSession(signatory_fsm.StateSigned, signatory_fsm.StateOTPSent)

	signedBytes := []byte("%PDF-1.7 original + first signature, since tampered")

	m.sessionRepo.EXPECT().Get("BATCH-88").Times(1).Return(sess, nil)
	m.ledgerRepo.EXPECT().Get(gomock.Any(), "CTR-55").Times(1).Return(&types.SignedArtifactRecord{
		ContractID: "CTR-55",
		SignerID:   "SG-AMINAH",
		Status:     types.ArtifactAuthoritySigned,
	}, nil)
	m.artifacts.EXPECT().Read("CTR-55_signed.pdf").Times(1).Return(signedBytes, nil)
	m.authority.EXPECT().VerifySignature(gomock.Any(), signedBytes).Times(1).Return(&authority.Result{
		StatusCode: authority.StatusCertNotValid,
		Message:    "signature does not match certificate",
	}, nil)

	// No Write and no journal expectation: a failed check must not leave an
	// export behind.
	outcome, err := svc.VerifyArtifact(ctx, "BATCH-88")
	req.Nil(outcome)

	var businessErr *workflow.BusinessError
	req.ErrorAs(err, &businessErr)
	req.Equal(authority.StatusCertNotValid, businessErr.Code)
}
