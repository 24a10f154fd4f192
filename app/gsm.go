package app

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	log "github.com/sirupsen/logrus"
)

func accessSecretVersion(client *secretmanager.Client, name string) (string, error) {
	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", Config.GoogleSecretManager.ProjectId, name),
	}

	result, err := client.AccessSecretVersion(context.Background(), req)
	if err != nil {
		return "", err
	}

	return string(result.Payload.Data), nil
}

func readSignerFromGSM() {
	if !Config.GoogleSecretManager.Enabled {
		log.Debug("[GSM] Google Secret Manager is disabled")
		return
	}

	if Config.Ethereum.PrivateKey != "" || Config.Ethereum.Mnemonic != "" || Config.Ethereum.GcpKmsKeyName != "" {
		log.Debug("[GSM] Signer key already configured")
		return
	}

	if Config.GoogleSecretManager.ProjectId == "" {
		log.Fatalf("[GSM] ProjectId is empty")
	}
	if Config.GoogleSecretManager.SignerSecretName == "" {
		log.Fatalf("[GSM] Signer secret name is empty")
	}

	ctx := context.Background()
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		log.Fatalf("[GSM] Failed to create secretmanager client: %v", err)
	}
	defer client.Close()

	log.Debug("[GSM] Reading signer key")
	secret, err := accessSecretVersion(client, Config.GoogleSecretManager.SignerSecretName)
	if err != nil {
		log.Fatalf("[GSM] Failed to access signer key: %v", err)
	}

	// a secret with spaces is a BIP-39 mnemonic, anything else is a raw hex key
	secret = strings.TrimSpace(secret)
	if strings.Contains(secret, " ") {
		Config.Ethereum.Mnemonic = secret
	} else {
		Config.Ethereum.PrivateKey = secret
	}
	log.Info("[GSM] Successfully read signer key")
}
