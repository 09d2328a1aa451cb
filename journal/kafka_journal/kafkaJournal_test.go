package kafka_journal

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewKafkaJournal_Validation(t *testing.T) {
	req := require.New(t)

	_, err := NewKafkaJournal("", "cosign_journal", nil, nil, time.Second)
	req.Error(err)

	_, err = NewKafkaJournal("localhost:9093", "", nil, nil, time.Second)
	req.Error(err)

	kj, err := NewKafkaJournal("localhost:9093", "cosign_journal", nil, nil, time.Second)
	req.NoError(err)
	req.NoError(kj.Close())
}

func TestKafkaAuthCredentials_Mechanism(t *testing.T) {
	req := require.New(t)

	var nilCreds *KafkaAuthCredentials
	req.Nil(nilCreds.Mechanism())

	creds := &KafkaAuthCredentials{Username: "producer", Password: "producerpass"}
	mechanism := creds.Mechanism()
	req.NotNil(mechanism)
	req.Equal("producer", mechanism.Username)
	req.Equal("producerpass", mechanism.Password)
}

func TestGetTLSConfig(t *testing.T) {
	req := require.New(t)

	// Empty path means TLS without a custom trust store.
	config, err := GetTLSConfig("")
	req.NoError(err)
	req.Nil(config.RootCAs)

	_, err = GetTLSConfig("/nonexistent/ca.crt")
	req.Error(err)

	caFile := "/tmp/cosign_test_ca.crt"
	req.NoError(os.WriteFile(caFile, []byte("not a pem"), 0644))
	defer os.Remove(caFile)

	config, err = GetTLSConfig(caFile)
	req.NoError(err)
	req.NotNil(config.RootCAs)
}
