package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/authority"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/envelope"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/fsm/state_machines/signatory_fsm"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/journal"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/kyc"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/modules/logger"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/modules/otpguard"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/repositories/ledger"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/repositories/session"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services/artifact"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services/placement"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/types"
)

const DefaultSessionTTL = 72 * time.Hour

// BusinessError is a well-formed rejection the caller can act on, as opposed
// to transport failures and internal errors. Code is either one of the
// engine's own reasons or the authority's status code passed through.
type BusinessError struct {
	Code    string
	Message string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newBusinessError(code, format string, args ...interface{}) *BusinessError {
	return &BusinessError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// SignOutcome reports a completed signing step. LedgerDegraded flags a
// signature that landed without its ledger row, to reconcile by hand.
type SignOutcome struct {
	Session        *types.SigningSession
	Artifact       *artifact.StoredArtifact
	AuthorityTxnID string
	LedgerDegraded bool
}

// EnrollmentEntry starts certificate issuance for a signer the authority
// does not recognize. Evidence URLs are optional.
type EnrollmentEntry struct {
	BatchID    string
	SignerID   string
	ICFrontURL string
	ICBackURL  string
	SelfieURL  string
}

// VerifyOutcome reports an authority-confirmed artifact and the one-shot
// export written for the audit file.
type VerifyOutcome struct {
	ExportName  string
	ContentHash string
	TxnID       string
}

type WorkflowService interface {
	Intercept(ctx context.Context, submitterID string) (*types.SigningSession, error)
	RequestCode(ctx context.Context, batchID, signerID string) error
	SubmitCode(ctx context.Context, batchID, signerID, code string) (*SignOutcome, error)
	EnrollSigner(ctx context.Context, entry *EnrollmentEntry) error
	CertificateStatus(ctx context.Context, signerID string) (*authority.Result, error)
	GetSession(batchID string) (*types.SigningSession, error)
	ListArtifacts(batchID string) ([]string, error)
	VerifyArtifact(ctx context.Context, batchID string) (*VerifyOutcome, error)
}

var _ WorkflowService = (*BaseWorkflowService)(nil)

type BaseWorkflowService struct {
	sessionTTL time.Duration

	Logger      logger.Logger
	sessionRepo session.SessionRepo
	ledgerRepo  ledger.LedgerRepo
	journal     journal.Journal
	otpGuard    otpguard.Guard
	authority   authority.Service
	envelope    envelope.Service
	kyc         kyc.Service
	placement   placement.PlacementService
	artifacts   artifact.Store

	// Duplicate webhook deliveries for one submitter collapse into a single
	// interception; everything else serializes per batch.
	interceptGroup singleflight.Group
	locksMu        sync.Mutex
	batchLocks     map[string]*sync.Mutex
}

func NewWorkflowService(sp *services.ServiceProvider, sessionTTL time.Duration) *BaseWorkflowService {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}

	return &BaseWorkflowService{
		sessionTTL:  sessionTTL,
		Logger:      sp.GetLogger(),
		sessionRepo: sp.GetSessionRepo(),
		ledgerRepo:  sp.GetLedgerRepo(),
		journal:     sp.GetJournal(),
		otpGuard:    sp.GetOTPGuard(),
		authority:   sp.GetAuthority(),
		envelope:    sp.GetEnvelope(),
		kyc:         sp.GetKYC(),
		placement:   sp.GetPlacement(),
		artifacts:   sp.GetArtifacts(),
		batchLocks:  make(map[string]*sync.Mutex),
	}
}

// lockBatch serializes engine entries touching one session. Webhook bursts
// and operator calls for different batches stay parallel.
func (s *BaseWorkflowService) lockBatch(batchID string) func() {
	s.locksMu.Lock()
	mu, ok := s.batchLocks[batchID]
	if !ok {
		mu = &sync.Mutex{}
		s.batchLocks[batchID] = mu
	}
	s.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

func (s *BaseWorkflowService) appendEvent(kind journal.Kind, sess *types.SigningSession, signerID string, payload interface{}) {
	var raw json.RawMessage
	if payload != nil {
		raw, _ = json.Marshal(payload)
	}

	err := s.journal.Append(journal.Event{
		Kind:       kind,
		BatchID:    sess.BatchID,
		ContractID: sess.ContractID,
		SignerID:   signerID,
		Payload:    raw,
	})
	if err != nil {
		s.Logger.Log("Failed to append %s journal event: %v", kind, err)
	}
}

func checkUsable(sess *types.SigningSession, now time.Time) error {
	if sess.Status == types.SessionAllSigned {
		return types.ErrSessionCompleted
	}
	if sess.Expired(now) {
		return types.ErrSessionExpired
	}
	return nil
}

// Intercept handles a form-completion notification: it resolves the
// submitter into its submission, builds or resumes the batch session, holds
// back the platform's own completion and moves the signatory into the
// signing lifecycle. Certificate check and code issuance run right away;
// their failures are logged, not returned, since the signatory can be
// re-driven by an operator call later.
func (s *BaseWorkflowService) Intercept(ctx context.Context, submitterID string) (*types.SigningSession, error) {
	v, err, _ := s.interceptGroup.Do(submitterID, func() (interface{}, error) {
		return s.intercept(ctx, submitterID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*types.SigningSession), nil
}

func (s *BaseWorkflowService) intercept(ctx context.Context, submitterID string) (*types.SigningSession, error) {
	submitter, err := s.envelope.GetSubmitter(ctx, submitterID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up submitter %s: %w", submitterID, err)
	}

	submission, err := s.envelope.GetSubmission(ctx, submitter.SubmissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up submission %s: %w", submitter.SubmissionID, err)
	}

	fresh, err := s.buildSession(submission, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	unlock := s.lockBatch(submission.BatchID)
	defer unlock()

	sess, created, err := s.sessionRepo.GetOrCreate(fresh)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create session: %w", err)
	}
	if created {
		s.Logger.Log("Started signing session %s for batch %s (%d signatories)",
			sess.ID, sess.BatchID, sess.Total)
		s.appendEvent(journal.KindSessionCreated, sess, "", map[string]interface{}{
			"template_id": sess.TemplateID,
			"signatories": sess.Total,
		})
	}

	if err := checkUsable(sess, time.Now().UTC()); err != nil {
		return nil, err
	}

	sig, _, err := sess.BySubmitterID(submitterID)
	if err != nil {
		return nil, err
	}

	next, err := signatory_fsm.FromState(sig.Status).Do(signatory_fsm.EventIntercept)
	if err != nil {
		// Late duplicate delivery after the signatory moved on.
		s.Logger.Log("Skipping interception for signer %s already at %s", sig.SignerID, sig.Status)
		return sess, nil
	}
	sig.Status = next
	if err := s.sessionRepo.Save(sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if err := s.envelope.SuppressCompletion(ctx, submitterID); err != nil {
		s.Logger.Log("Failed to suppress platform completion for submitter %s: %v", submitterID, err)
	}

	s.appendEvent(journal.KindSignatoryIntercepted, sess, sig.SignerID, map[string]interface{}{
		"role":         string(sig.Role),
		"submitter_id": submitterID,
	})

	if err := s.advanceToCode(ctx, sess, sig); err != nil {
		s.Logger.Log("Signatory %s stopped before code issuance: %v", sig.SignerID, err)
	}

	return sess, nil
}

func (s *BaseWorkflowService) buildSession(submission *envelope.Submission, now time.Time) (*types.SigningSession, error) {
	if len(submission.Submitters) == 0 {
		return nil, fmt.Errorf("submission %s carries no submitters", submission.ID)
	}

	signatories := make([]types.Signatory, 0, len(submission.Submitters))
	for _, sub := range submission.Submitters {
		role, err := types.ParseRole(sub.Role)
		if err != nil {
			return nil, fmt.Errorf("failed to build session for batch %s: %w", submission.BatchID, err)
		}
		signatories = append(signatories, types.Signatory{
			Role:        role,
			FullName:    sub.Name,
			Contact:     sub.Email,
			SignerID:    sub.SignerID,
			SubmitterID: sub.ID,
			Status:      signatory_fsm.StatePending,
		})
	}

	return &types.SigningSession{
		ID:               uuid.New().String(),
		BatchID:          submission.BatchID,
		TemplateID:       submission.TemplateID,
		ContractID:       submission.ContractID,
		Signatories:      signatories,
		CurrentIdx:       0,
		Total:            len(signatories),
		OriginalArtifact: submission.DocumentURL,
		Status:           types.SessionInProgress,
		CreatedAt:        now,
		ExpiresAt:        now.Add(s.sessionTTL),
	}, nil
}

// advanceToCode drives a signatory from wherever it stands to a delivered
// one-time code: certificate gate first, then issuance. From ready_to_sign
// it re-delivers a fresh code without moving the machine.
func (s *BaseWorkflowService) advanceToCode(ctx context.Context, sess *types.SigningSession, sig *types.Signatory) error {
	for {
		switch sig.Status {
		case signatory_fsm.StatePending:
			return newBusinessError("not_intercepted",
				"signer %s has not completed the envelope form yet", sig.SignerID)

		case signatory_fsm.StateIntercepted:
			result, err := s.authority.CertificateStatus(ctx, sig.SignerID)
			if err != nil {
				return fmt.Errorf("failed to check certificate of signer %s: %w", sig.SignerID, err)
			}
			sig.CertStatus = result.CertStatus
			if !result.CertValid() {
				if err := s.sessionRepo.Save(sess); err != nil {
					return fmt.Errorf("failed to save session: %w", err)
				}
				return newBusinessError("certificate_not_valid",
					"certificate of signer %s is %s, enrollment required", sig.SignerID, result.CertStatus)
			}
			next, err := signatory_fsm.FromState(sig.Status).Do(signatory_fsm.EventCertValid)
			if err != nil {
				return err
			}
			sig.Status = next
			if err := s.sessionRepo.Save(sess); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

		case signatory_fsm.StateCertChecked, signatory_fsm.StateOTPSent:
			if err := s.issueCode(ctx, sess, sig); err != nil {
				return err
			}
			next, err := signatory_fsm.FromState(sig.Status).Do(signatory_fsm.EventOTPSent)
			if err != nil {
				return err
			}
			sig.Status = next
			if err := s.sessionRepo.Save(sess); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
			return nil

		case signatory_fsm.StateReadyToSign:
			// A fresh code after a failed attempt, state stays put.
			return s.issueCode(ctx, sess, sig)

		default:
			return newBusinessError("signatory_finished",
				"signer %s is already %s", sig.SignerID, sig.Status)
		}
	}
}

func (s *BaseWorkflowService) issueCode(ctx context.Context, sess *types.SigningSession, sig *types.Signatory) error {
	result, err := s.authority.RequestOTP(ctx, &authority.OTPRequest{
		SignerID:   sig.SignerID,
		Contact:    sig.Contact,
		DocumentID: sess.ContractID,
	})
	if err != nil {
		return fmt.Errorf("failed to request one-time code for signer %s: %w", sig.SignerID, err)
	}
	if !result.OK() {
		return &BusinessError{Code: result.StatusCode, Message: result.Message}
	}

	s.appendEvent(journal.KindOTPSent, sess, sig.SignerID, nil)
	return nil
}

// RequestCode issues (or re-issues) a one-time code for the signer,
// running the certificate gate first when it has not passed yet.
func (s *BaseWorkflowService) RequestCode(ctx context.Context, batchID, signerID string) error {
	unlock := s.lockBatch(batchID)
	defer unlock()

	sess, err := s.sessionRepo.Get(batchID)
	if err != nil {
		return err
	}
	if err := checkUsable(sess, time.Now().UTC()); err != nil {
		return err
	}

	sig, _, err := sess.BySignerID(signerID)
	if err != nil {
		return newBusinessError("unknown_signer", "%v", err)
	}

	return s.advanceToCode(ctx, sess, sig)
}

// SubmitCode completes the signer's step: it consumes the one-time code,
// resolves the signing base and placement, calls the authority and persists
// the layered artifact. The guard entry is released only when the code never
// reached the authority or the authority blamed the code itself.
func (s *BaseWorkflowService) SubmitCode(ctx context.Context, batchID, signerID, code string) (*SignOutcome, error) {
	unlock := s.lockBatch(batchID)
	defer unlock()

	sess, err := s.sessionRepo.Get(batchID)
	if err != nil {
		return nil, err
	}
	if err := checkUsable(sess, time.Now().UTC()); err != nil {
		return nil, err
	}

	sig, idx, err := sess.BySignerID(signerID)
	if err != nil {
		return nil, newBusinessError("unknown_signer", "%v", err)
	}
	if idx != sess.CurrentIdx {
		return nil, newBusinessError("not_signers_turn",
			"signing position %d is active, signer %s holds position %d", sess.CurrentIdx, signerID, idx)
	}
	if sig.Status != signatory_fsm.StateOTPSent && sig.Status != signatory_fsm.StateReadyToSign {
		return nil, newBusinessError("no_code_issued",
			"no one-time code was issued to signer %s (state %s)", signerID, sig.Status)
	}

	key := otpguard.Key{DocumentID: sess.ContractID, SignerID: signerID, Code: code}
	if !s.otpGuard.TryConsume(key) {
		return nil, newBusinessError("code_replayed",
			"one-time code already used for contract %s", sess.ContractID)
	}

	base, err := s.signingBase(ctx, sess)
	if err != nil {
		// The code never went over the wire, safe to hand back.
		s.otpGuard.Release(key)
		return nil, err
	}

	rect, err := s.placement.Resolve(sig.Role, sess.TemplateID, base)
	if err != nil {
		s.otpGuard.Release(key)
		if errors.Is(err, placement.ErrNoPlacement) {
			return nil, newBusinessError("no_placement", "%v", err)
		}
		return nil, err
	}

	next, err := signatory_fsm.FromState(sig.Status).Do(signatory_fsm.EventCodeAccepted)
	if err != nil {
		s.otpGuard.Release(key)
		return nil, err
	}
	sig.Status = next
	if err := s.sessionRepo.Save(sess); err != nil {
		s.otpGuard.Release(key)
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	result, err := s.authority.SignDocument(ctx, &authority.SignRequest{
		SignerID:   signerID,
		Code:       code,
		DocumentID: sess.ContractID,
		PDF:        base,
		Rect:       rect,
	})
	if err != nil {
		// Transport-level: the authority may or may not have consumed the
		// code, the guard entry stays until it expires.
		s.appendEvent(journal.KindSigningFailed, sess, signerID, map[string]interface{}{
			"reason": err.Error(),
		})
		return nil, err
	}
	if !result.OK() {
		return nil, s.signRejected(sess, sig, key, result)
	}
	if len(result.SignedPDF) == 0 {
		s.appendEvent(journal.KindSigningFailed, sess, signerID, map[string]interface{}{
			"reason": "authority returned success without a document",
		})
		return nil, fmt.Errorf("authority reported success but returned no document (txn %s)", result.TxnID)
	}

	return s.persistSignature(ctx, sess, sig, result)
}

// signRejected sorts a well-formed signing rejection: code-attributable
// failures hand the code back and leave the signatory retryable, anything
// else is final for this signatory.
func (s *BaseWorkflowService) signRejected(sess *types.SigningSession, sig *types.Signatory, key otpguard.Key, result *authority.Result) error {
	s.appendEvent(journal.KindSigningFailed, sess, sig.SignerID, map[string]interface{}{
		"status_code": result.StatusCode,
		"message":     result.Message,
	})

	if result.CodeAttributable() {
		s.otpGuard.Release(key)
		return &BusinessError{Code: result.StatusCode, Message: result.Message}
	}

	next, err := signatory_fsm.FromState(sig.Status).Do(signatory_fsm.EventFail)
	if err == nil {
		sig.Status = next
		sess.Status = types.SessionFailed
		if err := s.sessionRepo.Save(sess); err != nil {
			s.Logger.Log("Failed to save failed session %s: %v", sess.BatchID, err)
		}
	}

	return &BusinessError{Code: result.StatusCode, Message: result.Message}
}

func (s *BaseWorkflowService) persistSignature(ctx context.Context, sess *types.SigningSession, sig *types.Signatory, result *authority.Result) (*SignOutcome, error) {
	name := artifact.SessionStableName(sess.ContractID)
	stored, err := s.artifacts.Write(name, result.SignedPDF)
	if err != nil {
		s.appendEvent(journal.KindSigningFailed, sess, sig.SignerID, map[string]interface{}{
			"reason": fmt.Sprintf("artifact write failed: %v", err),
		})
		return nil, fmt.Errorf("failed to persist signed artifact: %w", err)
	}

	record := &types.SignedArtifactRecord{
		ContractID:      sess.ContractID,
		AuthorityTxnID:  result.TxnID,
		SignerID:        sig.SignerID,
		SignedAt:        time.Now().UTC(),
		AuthorityStatus: result.StatusCode,
		ArtifactPath:    stored.Path,
		ContentHash:     stored.Hash,
		SizeBytes:       stored.Size,
		Status:          types.ArtifactAuthoritySigned,
	}

	ledgerDegraded := false
	if err := s.ledgerRepo.Upsert(ctx, record); err != nil {
		// The cryptographic signature is already final, reconcile later.
		ledgerDegraded = true
		s.Logger.Log("Consistency risk: ledger write failed after applied signature on contract %s: %v",
			sess.ContractID, err)
		s.appendEvent(journal.KindLedgerWriteFailed, sess, sig.SignerID, map[string]interface{}{
			"txn_id": result.TxnID,
			"reason": err.Error(),
		})
	}

	s.appendEvent(journal.KindArtifactSigned, sess, sig.SignerID, map[string]interface{}{
		"txn_id":       result.TxnID,
		"content_hash": stored.Hash,
		"size_bytes":   stored.Size,
	})

	next, err := signatory_fsm.FromState(sig.Status).Do(signatory_fsm.EventSigned)
	if err != nil {
		return nil, err
	}
	sig.Status = next
	sess.CurrentArtifact = name

	if sess.AllSigned() {
		sess.Status = types.SessionAllSigned
		s.appendEvent(journal.KindSessionCompleted, sess, "", map[string]interface{}{
			"signatories": sess.Total,
		})
		s.Logger.Log("Session %s completed, %d signatures on contract %s",
			sess.BatchID, sess.Total, sess.ContractID)
	} else {
		sess.CurrentIdx++
	}

	if err := s.sessionRepo.Save(sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &SignOutcome{
		Session:        sess,
		Artifact:       stored,
		AuthorityTxnID: result.TxnID,
		LedgerDegraded: ledgerDegraded,
	}, nil
}

// signingBase picks the document the next signature layers onto: the stored
// artifact once a signature landed, the pristine original before that.
func (s *BaseWorkflowService) signingBase(ctx context.Context, sess *types.SigningSession) ([]byte, error) {
	record, err := s.ledgerRepo.Get(ctx, sess.ContractID)
	if err != nil && !errors.Is(err, ledger.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to read ledger for contract %s: %w", sess.ContractID, err)
	}

	if err == nil && record.Status == types.ArtifactAuthoritySigned {
		data, readErr := s.artifacts.Read(artifact.SessionStableName(sess.ContractID))
		if readErr != nil {
			return nil, fmt.Errorf("ledger promises a signed artifact for contract %s but the store cannot read it: %w",
				sess.ContractID, readErr)
		}
		return data, nil
	}

	data, err := s.envelope.Download(ctx, sess.OriginalArtifact)
	if err != nil {
		return nil, fmt.Errorf("failed to download original artifact: %w", err)
	}
	return data, nil
}

// EnrollSigner enters the certificate-enrollment path: optional identity
// evidence is gathered from the verification gateway, the authority starts
// issuance and the signer keeps its place in the session. Completion is the
// authority's side, signing resumes through the normal steps once the
// certificate exists.
func (s *BaseWorkflowService) EnrollSigner(ctx context.Context, entry *EnrollmentEntry) error {
	unlock := s.lockBatch(entry.BatchID)
	defer unlock()

	sess, err := s.sessionRepo.Get(entry.BatchID)
	if err != nil {
		return err
	}
	if err := checkUsable(sess, time.Now().UTC()); err != nil {
		return err
	}

	sig, _, err := sess.BySignerID(entry.SignerID)
	if err != nil {
		return newBusinessError("unknown_signer", "%v", err)
	}

	evidence := s.gatherEvidence(ctx, entry)
	result, err := s.authority.EnrollCertificate(ctx, &authority.EnrollmentRequest{
		SignerID: sig.SignerID,
		FullName: sig.FullName,
		Contact:  sig.Contact,
		Evidence: evidence,
	})
	if err != nil {
		return fmt.Errorf("failed to start enrollment for signer %s: %w", sig.SignerID, err)
	}
	if !result.OK() {
		return &BusinessError{Code: result.StatusCode, Message: result.Message}
	}

	s.appendEvent(journal.KindEnrollmentStarted, sess, sig.SignerID, map[string]interface{}{
		"with_evidence": evidence != nil,
	})

	return newBusinessError("enrollment_initiated",
		"certificate enrollment initiated for signer %s, signing resumes once the authority issues the certificate",
		sig.SignerID)
}

// gatherEvidence is best-effort: the gateway being down must not block
// enrollment, the authority reviews whatever arrives.
func (s *BaseWorkflowService) gatherEvidence(ctx context.Context, entry *EnrollmentEntry) *authority.Evidence {
	if entry.ICFrontURL == "" && entry.SelfieURL == "" {
		return nil
	}

	evidence := &authority.Evidence{}

	if entry.ICFrontURL != "" && entry.SelfieURL != "" {
		score, err := s.kyc.FaceMatch(ctx, entry.ICFrontURL, entry.SelfieURL)
		if err != nil {
			s.Logger.Log("Failed to score face match for signer %s: %v", entry.SignerID, err)
		} else {
			evidence.FaceMatchScore = score
		}
	}

	if entry.SelfieURL != "" {
		score, err := s.kyc.Liveness(ctx, entry.SelfieURL)
		if err != nil {
			s.Logger.Log("Failed to score liveness for signer %s: %v", entry.SignerID, err)
		} else {
			evidence.LivenessScore = score
		}
	}

	if entry.ICFrontURL != "" {
		fields, err := s.kyc.OCR(ctx, entry.ICFrontURL, entry.ICBackURL)
		if err != nil {
			s.Logger.Log("Failed to OCR identity document for signer %s: %v", entry.SignerID, err)
		} else {
			evidence.OCRFields = map[string]string{
				"name":      fields.Name,
				"ic_number": fields.ICNumber,
				"dob":       fields.DOB,
				"address":   fields.Address,
			}
		}
	}

	return evidence
}

// CertificateStatus is the read-only operator probe, it does not touch any
// session.
func (s *BaseWorkflowService) CertificateStatus(ctx context.Context, signerID string) (*authority.Result, error) {
	return s.authority.CertificateStatus(ctx, signerID)
}

func (s *BaseWorkflowService) GetSession(batchID string) (*types.SigningSession, error) {
	return s.sessionRepo.Get(batchID)
}

// ListArtifacts names every stored artifact belonging to the batch: the
// session-stable progressive document plus any one-shot exports.
func (s *BaseWorkflowService) ListArtifacts(batchID string) ([]string, error) {
	sess, err := s.sessionRepo.Get(batchID)
	if err != nil {
		return nil, err
	}

	names, err := s.artifacts.List("")
	if err != nil {
		return nil, err
	}

	stable := artifact.SessionStableName(sess.ContractID)
	var out []string
	for _, name := range names {
		if name == stable || strings.Contains(name, "_"+batchID+"_") {
			out = append(out, name)
		}
	}
	return out, nil
}

// VerifyArtifact asks the authority to check the signatures embedded in the
// batch's current document and, when the check passes, writes a one-shot
// export of the verified bytes. The batch lock keeps the read off a document
// mid-overwrite. Completed sessions are accepted.
func (s *BaseWorkflowService) VerifyArtifact(ctx context.Context, batchID string) (*VerifyOutcome, error) {
	unlock := s.lockBatch(batchID)
	defer unlock()

	sess, err := s.sessionRepo.Get(batchID)
	if err != nil {
		return nil, err
	}

	record, err := s.ledgerRepo.Get(ctx, sess.ContractID)
	if err != nil {
		if errors.Is(err, ledger.ErrRecordNotFound) {
			return nil, newBusinessError("nothing_signed",
				"no authority signature recorded for contract %s yet", sess.ContractID)
		}
		return nil, fmt.Errorf("failed to read ledger for contract %s: %w", sess.ContractID, err)
	}
	if record.Status != types.ArtifactAuthoritySigned {
		return nil, newBusinessError("nothing_signed",
			"no authority signature recorded for contract %s yet", sess.ContractID)
	}

	data, err := s.artifacts.Read(artifact.SessionStableName(sess.ContractID))
	if err != nil {
		return nil, fmt.Errorf("ledger promises a signed artifact for contract %s but the store cannot read it: %w",
			sess.ContractID, err)
	}

	result, err := s.authority.VerifySignature(ctx, data)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return nil, &BusinessError{Code: result.StatusCode, Message: result.Message}
	}

	exportName := artifact.OneShotName(sess.BatchID, record.SignerID, time.Now().UTC())
	stored, err := s.artifacts.Write(exportName, data)
	if err != nil {
		return nil, fmt.Errorf("failed to write verification export %s: %w", exportName, err)
	}

	s.appendEvent(journal.KindArtifactVerified, sess, record.SignerID, map[string]interface{}{
		"export":       exportName,
		"content_hash": stored.Hash,
		"txn_id":       result.TxnID,
	})

	return &VerifyOutcome{
		ExportName:  exportName,
		ContentHash: stored.Hash,
		TxnID:       result.TxnID,
	}, nil
}
