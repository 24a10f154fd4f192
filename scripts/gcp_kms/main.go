package main

import (
	"fmt"
	"log"
	"os"

	"github.com/HumansWindow/minting-service/common"
)

// Verifies that the configured GCP KMS key can sign and prints the signer
// address to fund before pointing the engine at it.
func main() {
	keyName := os.Getenv("GCP_KMS_KEY_NAME")

	fmt.Println("Google KMS Key Name: ", keyName)
	if keyName == "" {
		log.Fatalf("GCP KMS Key Name not set")
	}

	signer, err := common.NewGcpKmsSigner(keyName)
	if err != nil {
		log.Fatalf("failed to create GCP KMS signer: %v", err)
	}
	defer signer.Destroy()

	fmt.Println("Eth Address: ", signer.EthAddress())

	txData := []byte("example transaction data")

	ethSignature, err := signer.EthSign(txData)
	if err != nil {
		log.Fatalf("failed to sign Ethereum hash: %v", err)
	}
	fmt.Printf("Ethereum Signature: %x\n", ethSignature)
}
