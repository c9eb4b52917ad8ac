package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/devgupta2601/tuition_hub/configs"
	"github.com/devgupta2601/tuition_hub/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerateWithdrawalReceipt renders a PDF receipt for an approved withdrawal
// and stores its URL on the request. Best-effort: the withdrawal stays
// approved even if receipt generation fails.
func GenerateWithdrawalReceipt(db *gorm.DB, request models.WithdrawalRequest, tutor models.Tutor) {
	if request.Status != "approved" {
		return
	}

	htmlData, err := generateReceiptHTML(request, tutor)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt HTML for withdrawal %s: %v", request.ID, err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF for withdrawal %s: %v", request.ID, err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, request.ID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload receipt for withdrawal %s: %v", request.ID, err)
		return
	}

	if err := db.Model(&models.WithdrawalRequest{}).Where("id = ?", request.ID).
		Update("receipt_url", uploadURL).Error; err != nil {
		log.Printf("🔥 Failed to store receipt URL for withdrawal %s: %v", request.ID, err)
		return
	}
	log.Printf("✅ Receipt generated for withdrawal %s", request.ID)
}

func generateReceiptHTML(request models.WithdrawalRequest, tutor models.Tutor) (string, error) {
	tmpl, err := template.ParseFiles("templates/receipt.html")
	if err != nil {
		return "", err
	}

	approvedAt := time.Now()
	if request.ApprovedAt != nil {
		approvedAt = *request.ApprovedAt
	}

	data := struct {
		TutorName  string
		Amount     string
		Reference  string
		ApprovedAt string
		ApprovedBy string
	}{
		TutorName:  tutor.Name,
		Amount:     fmt.Sprintf("₹%.2f", request.Amount),
		Reference:  request.ID.String(),
		ApprovedAt: approvedAt.Format("January 2, 2006"),
	}
	if request.ApprovedBy != nil {
		data.ApprovedBy = *request.ApprovedBy
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, requestID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s_%s", requestID, uuid.New().String()),
		Folder:       "tuition_hub_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
