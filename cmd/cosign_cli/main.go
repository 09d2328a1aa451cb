package main

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/authority"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/fsm/fsm"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/fsm/state_machines/signatory_fsm"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/journal"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/journal/file_journal"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/api/http_api/requests"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/types"
)

const (
	flagListenAddr  = "listen_addr"
	flagAPIKey      = "api_key"
	flagJournalFile = "journal_file"
	flagICFrontURL  = "ic_front_url"
	flagICBackURL   = "ic_back_url"
	flagSelfieURL   = "selfie_url"
)

func init() {
	rootCmd.PersistentFlags().String(flagListenAddr, "localhost:8080", "Orchestrator HTTP API address")
	rootCmd.PersistentFlags().String(flagAPIKey, "", "Operator API key, sent as X-Api-Key")
	rootCmd.PersistentFlags().String(flagJournalFile, "./cosign_journal", "Path to the daemon's file journal")
}

var rootCmd = &cobra.Command{
	Use:   "cosign_cli",
	Short: "co-signing orchestrator operator utilities",
}

func main() {
	rootCmd.AddCommand(
		getSessionCommand(),
		getArtifactsCommand(),
		getCertificateStatusCommand(),
		requestCodeCommand(),
		submitCodeCommand(),
		enrollSignerCommand(),
		verifyArtifactCommand(),
		journalTailCommand(),
		genAPIKeyCommand(),
	)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Failed to execute root command: %v", err)
	}
}

func readHostFlags(cmd *cobra.Command) (string, string, error) {
	listenAddr, err := cmd.Flags().GetString(flagListenAddr)
	if err != nil {
		return "", "", fmt.Errorf("failed to read configuration: %v", err)
	}
	apiKey, err := cmd.Flags().GetString(flagAPIKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to read configuration: %v", err)
	}
	return listenAddr, apiKey, nil
}

func apiGetRequest(host, apiKey, path string, response interface{}) error {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("http://%s%s", host, path), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-Api-Key", apiKey)
	return doRequest(req, response)
}

func apiPostRequest(host, apiKey, path string, payload interface{}, response interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("http://%s%s", host, path), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", apiKey)
	return doRequest(req, response)
}

func doRequest(req *http.Request, response interface{}) error {
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send HTTP request: %w", err)
	}
	defer resp.Body.Close()
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	if err = json.Unmarshal(responseBody, response); err != nil {
		return fmt.Errorf("failed to unmarshal response: %v", err)
	}
	return nil
}

func signatoryColor(state fsm.State) *color.Color {
	switch state {
	case signatory_fsm.StateSigned:
		return color.New(color.FgGreen)
	case signatory_fsm.StateFailed:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgYellow)
	}
}

func sessionColor(status types.SessionStatus) *color.Color {
	switch status {
	case types.SessionAllSigned:
		return color.New(color.FgGreen)
	case types.SessionFailed:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgYellow)
	}
}

func getSessionRequest(host, apiKey, batchID string) (*SessionResponse, error) {
	var response SessionResponse
	if err := apiGetRequest(host, apiKey, "/getSession?batchId="+url.QueryEscape(batchID), &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func getSessionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get_session [batchID]",
		Args:  cobra.ExactArgs(1),
		Short: "shows the signing session for the given batch with per-signatory progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr, apiKey, err := readHostFlags(cmd)
			if err != nil {
				return err
			}
			session, err := getSessionRequest(listenAddr, apiKey, args[0])
			if err != nil {
				return fmt.Errorf("failed to get session: %w", err)
			}
			if session.ErrorMessage != "" {
				return fmt.Errorf("failed to get session: %s", session.ErrorMessage)
			}
			printSession(session.Result)
			return nil
		},
	}
}

func printSession(sess *types.SigningSession) {
	fmt.Printf("Batch ID:\t%s\n", sess.BatchID)
	fmt.Printf("Contract ID:\t%s\n", sess.ContractID)
	fmt.Printf("Template:\t%s\n", sess.TemplateID)
	fmt.Printf("Status:\t\t%s\n", sessionColor(sess.Status).Sprint(sess.Status))
	fmt.Printf("Progress:\t%d of %d signed\n", sess.SignedCount(), sess.Total)
	fmt.Printf("Created at:\t%s\n", sess.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Expires at:\t%s\n", sess.ExpiresAt.Format(time.RFC3339))
	if sess.CurrentArtifact != "" {
		fmt.Printf("Artifact:\t%s\n", sess.CurrentArtifact)
	}
	fmt.Println("Signatories:")
	for idx := range sess.Signatories {
		signatory := &sess.Signatories[idx]
		marker := "  "
		if idx == sess.CurrentIdx && sess.Status == types.SessionInProgress {
			marker = "->"
		}
		fmt.Printf("%s [%d] %s (%s)\n", marker, idx, signatory.FullName, signatory.Role)
		fmt.Printf("\tSigner ID: %s\n", signatory.SignerID)
		fmt.Printf("\tStatus: %s\n", signatoryColor(signatory.Status).Sprint(signatory.Status))
		if signatory.CertStatus != "" {
			fmt.Printf("\tCertificate: %s\n", signatory.CertStatus)
		}
	}
}

func getArtifactsRequest(host, apiKey, batchID string) (*ArtifactsResponse, error) {
	var response ArtifactsResponse
	if err := apiGetRequest(host, apiKey, "/getArtifacts?batchId="+url.QueryEscape(batchID), &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func getArtifactsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get_artifacts [batchID]",
		Args:  cobra.ExactArgs(1),
		Short: "lists signed PDF artifacts stored for the given batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr, apiKey, err := readHostFlags(cmd)
			if err != nil {
				return err
			}
			artifacts, err := getArtifactsRequest(listenAddr, apiKey, args[0])
			if err != nil {
				return fmt.Errorf("failed to get artifacts: %w", err)
			}
			if artifacts.ErrorMessage != "" {
				return fmt.Errorf("failed to get artifacts: %s", artifacts.ErrorMessage)
			}
			if len(artifacts.Result.Artifacts) == 0 {
				fmt.Println("No artifacts stored for this batch yet.")
				return nil
			}
			for _, name := range artifacts.Result.Artifacts {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func getCertificateStatusRequest(host, apiKey, signerID string) (*CertificateStatusResponse, error) {
	var response CertificateStatusResponse
	if err := apiGetRequest(host, apiKey, "/getCertificateStatus?signerId="+url.QueryEscape(signerID), &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func getCertificateStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get_certificate_status [signerID]",
		Args:  cobra.ExactArgs(1),
		Short: "asks the trust authority whether the signatory holds a usable certificate",
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr, apiKey, err := readHostFlags(cmd)
			if err != nil {
				return err
			}
			status, err := getCertificateStatusRequest(listenAddr, apiKey, args[0])
			if err != nil {
				return fmt.Errorf("failed to get certificate status: %w", err)
			}
			if status.ErrorMessage != "" {
				return fmt.Errorf("failed to get certificate status: %s", status.ErrorMessage)
			}
			certColor := color.New(color.FgRed)
			if status.Result.CertStatus == authority.CertStatusValid {
				certColor = color.New(color.FgGreen)
			}
			fmt.Printf("Signer ID:\t%s\n", status.Result.SignerID)
			fmt.Printf("Certificate:\t%s\n", certColor.Sprint(status.Result.CertStatus))
			fmt.Printf("Status code:\t%s\n", status.Result.StatusCode)
			if status.Result.Message != "" {
				fmt.Printf("Message:\t%s\n", status.Result.Message)
			}
			return nil
		},
	}
}

func requestCodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "request_code [batchID] [signerID]",
		Args:  cobra.ExactArgs(2),
		Short: "asks the trust authority to deliver a one-time code to the signatory",
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr, apiKey, err := readHostFlags(cmd)
			if err != nil {
				return err
			}
			payload := requests.SignerAtBatchForm{BatchID: args[0], SignerID: args[1]}
			var response StatusResponse
			if err := apiPostRequest(listenAddr, apiKey, "/requestCode", payload, &response); err != nil {
				return fmt.Errorf("failed to request code: %w", err)
			}
			if response.ErrorMessage != "" {
				return fmt.Errorf("failed to request code: %s", response.ErrorMessage)
			}
			fmt.Println("One-time code requested. Ask the signatory to check their phone.")
			return nil
		},
	}
}

func submitCodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "submit_code [batchID] [signerID] [code]",
		Args:  cobra.ExactArgs(3),
		Short: "submits the signatory's one-time code and applies their signature to the batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr, apiKey, err := readHostFlags(cmd)
			if err != nil {
				return err
			}
			payload := requests.SubmitCodeForm{BatchID: args[0], SignerID: args[1], Code: args[2]}
			var response SubmitCodeResponse
			if err := apiPostRequest(listenAddr, apiKey, "/submitCode", payload, &response); err != nil {
				return fmt.Errorf("failed to submit code: %w", err)
			}
			if response.ErrorMessage != "" {
				return fmt.Errorf("failed to submit code: %s", response.ErrorMessage)
			}
			result := response.Result
			color.New(color.FgGreen).Println("Signature applied.")
			fmt.Printf("Authority txn:\t%s\n", result.AuthorityTxnID)
			fmt.Printf("Artifact:\t%s\n", result.ArtifactPath)
			fmt.Printf("SHA-256:\t%s\n", result.ContentHash)
			fmt.Printf("Size:\t\t%d bytes\n", result.SizeBytes)
			fmt.Printf("Session:\t%s, %d of %d signed\n", result.SessionStatus, result.SignedCount, result.Total)
			if result.LedgerDegraded {
				color.New(color.FgYellow).Println("Ledger write failed, the signed artifact exists on disk only. Reconcile the ledger before releasing funds.")
			}
			return nil
		},
	}
}

func enrollSignerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enroll_signer [batchID] [signerID]",
		Args:  cobra.ExactArgs(2),
		Short: "starts certificate enrollment for a signatory, optionally with KYC evidence URLs",
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr, apiKey, err := readHostFlags(cmd)
			if err != nil {
				return err
			}
			icFrontURL, err := cmd.Flags().GetString(flagICFrontURL)
			if err != nil {
				return fmt.Errorf("failed to read configuration: %v", err)
			}
			icBackURL, err := cmd.Flags().GetString(flagICBackURL)
			if err != nil {
				return fmt.Errorf("failed to read configuration: %v", err)
			}
			selfieURL, err := cmd.Flags().GetString(flagSelfieURL)
			if err != nil {
				return fmt.Errorf("failed to read configuration: %v", err)
			}
			payload := requests.EnrollSignerForm{
				BatchID:    args[0],
				SignerID:   args[1],
				ICFrontURL: icFrontURL,
				ICBackURL:  icBackURL,
				SelfieURL:  selfieURL,
			}
			var response StatusResponse
			if err := apiPostRequest(listenAddr, apiKey, "/enrollSigner", payload, &response); err != nil {
				return fmt.Errorf("failed to enroll signer: %w", err)
			}
			// Enrollment never signs anything by itself, so the daemon answers
			// with an enrollment_initiated business message rather than a result.
			if strings.HasPrefix(response.ErrorMessage, "enrollment_initiated") {
				fmt.Println(response.ErrorMessage)
				return nil
			}
			if response.ErrorMessage != "" {
				return fmt.Errorf("failed to enroll signer: %s", response.ErrorMessage)
			}
			fmt.Println(response.Result)
			return nil
		},
	}
	cmd.Flags().String(flagICFrontURL, "", "URL of the IC front image")
	cmd.Flags().String(flagICBackURL, "", "URL of the IC back image")
	cmd.Flags().String(flagSelfieURL, "", "URL of the selfie image")
	return cmd
}

func verifyArtifactCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify_artifact [batchID]",
		Args:  cobra.ExactArgs(1),
		Short: "asks the trust authority to check the batch's signed document and writes a one-shot export",
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr, apiKey, err := readHostFlags(cmd)
			if err != nil {
				return err
			}
			payload := requests.BatchIdForm{BatchID: args[0]}
			var response VerifyArtifactResponse
			if err := apiPostRequest(listenAddr, apiKey, "/verifyArtifact", payload, &response); err != nil {
				return fmt.Errorf("failed to verify artifact: %w", err)
			}
			if response.ErrorMessage != "" {
				return fmt.Errorf("failed to verify artifact: %s", response.ErrorMessage)
			}
			result := response.Result
			color.New(color.FgGreen).Println("Signature check passed.")
			fmt.Printf("Export:\t\t%s\n", result.ExportName)
			fmt.Printf("SHA-256:\t%s\n", result.ContentHash)
			fmt.Printf("Authority txn:\t%s\n", result.AuthorityTxnID)
			return nil
		},
	}
}

func journalTailCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "journal_tail [n]",
		Args:  cobra.MaximumNArgs(1),
		Short: "prints the last n events of the daemon's file journal (default 20)",
		RunE: func(cmd *cobra.Command, args []string) error {
			journalFile, err := cmd.Flags().GetString(flagJournalFile)
			if err != nil {
				return fmt.Errorf("failed to read configuration: %v", err)
			}
			n := 20
			if len(args) > 0 {
				if n, err = strconv.Atoi(args[0]); err != nil {
					return fmt.Errorf("failed to parse event count: %v", err)
				}
			}
			fj, err := file_journal.NewFileJournal(journalFile)
			if err != nil {
				return fmt.Errorf("failed to open journal: %w", err)
			}
			defer fj.Close()
			events, err := fj.Tail(n)
			if err != nil {
				return fmt.Errorf("failed to read journal: %w", err)
			}
			for _, event := range events {
				printEvent(event)
			}
			return nil
		},
	}
}

func printEvent(e journal.Event) {
	kind := string(e.Kind)
	switch e.Kind {
	case journal.KindSigningFailed, journal.KindLedgerWriteFailed:
		kind = color.New(color.FgRed).Sprint(kind)
	case journal.KindArtifactSigned, journal.KindArtifactVerified, journal.KindSessionCompleted:
		kind = color.New(color.FgGreen).Sprint(kind)
	}
	line := fmt.Sprintf("%s  %s", e.CreatedAt.Format(time.RFC3339), kind)
	if e.BatchID != "" {
		line += "  batch=" + e.BatchID
	}
	if e.SignerID != "" {
		line += "  signer=" + e.SignerID
	}
	fmt.Println(line)
	if len(e.Payload) > 0 {
		fmt.Printf("\t%s\n", string(e.Payload))
	}
}

func genAPIKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gen_api_key [key]",
		Args:  cobra.MaximumNArgs(1),
		Short: "generates an operator API key and the bcrypt hash for http_api.api_key_hash",
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) > 0 {
				key = args[0]
			} else {
				raw := make([]byte, 32)
				if _, err := rand.Read(raw); err != nil {
					return fmt.Errorf("failed to generate key: %w", err)
				}
				key = hex.EncodeToString(raw)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash key: %w", err)
			}
			fmt.Printf("API key:\t%s\n", key)
			fmt.Printf("Config hash:\t%s\n", string(hash))
			fmt.Println("Put the hash into http_api.api_key_hash and hand the key to the operator.")
			return nil
		},
	}
}
