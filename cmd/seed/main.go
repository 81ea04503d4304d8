package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/historin/historin-backend/config"
	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/internal/app/repository"
	"github.com/historin/historin-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports quiz questions from an XLSX sheet with the columns
// city, question, option1..option4, answer.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	questionRepo := repository.NewQuizQuestionRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	questions, err := readQuestionsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total questions to import: %d\n", len(questions))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	if err := questionRepo.BulkCreate(questions); err != nil {
		log.Fatal("Failed to bulk create questions:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total questions imported: %d\n", len(questions))
}

func readQuestionsFromXLSX(filePath string) ([]model.QuizQuestion, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet has no data rows")
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"city", "question", "option1", "option2", "option3", "option4", "answer"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var questions []model.QuizQuestion
	for rowIdx, row := range rows[1:] {
		cell := func(name string) string {
			idx := columns[name]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		// Skip fully blank trailing rows, common in hand-edited sheets.
		if cell("question") == "" && cell("city") == "" {
			continue
		}

		answer, err := strconv.Atoi(cell("answer"))
		if err != nil || answer < 1 || answer > 4 {
			return nil, fmt.Errorf("row %d: answer must be between 1 and 4", rowIdx+2)
		}

		questions = append(questions, model.QuizQuestion{
			City:     cell("city"),
			Question: cell("question"),
			Option1:  cell("option1"),
			Option2:  cell("option2"),
			Option3:  cell("option3"),
			Option4:  cell("option4"),
			Answer:   answer,
		})
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions found in sheet")
	}
	return questions, nil
}
