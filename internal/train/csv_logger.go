package train

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVLogger logs training progress to a CSV file.
type CSVLogger struct {
	BaseCallback
	Filename string
	Append   bool

	file   *os.File
	writer *csv.Writer
	start  time.Time
}

// NewCSVLogger creates a new CSVLogger.
func NewCSVLogger(filename string, append bool) *CSVLogger {
	return &CSVLogger{
		Filename: filename,
		Append:   append,
	}
}

func (c *CSVLogger) OnTrainBegin(t *Trainer) {
	mode := os.O_CREATE | os.O_WRONLY
	if c.Append {
		mode |= os.O_APPEND
	} else {
		mode |= os.O_TRUNC
	}

	file, err := os.OpenFile(c.Filename, mode, 0644)
	if err != nil {
		t.Logger().Error("csv logger: open failed", "file", c.Filename, "err", err)
		return
	}
	c.file = file
	c.writer = csv.NewWriter(file)
	c.start = time.Now()

	// Write header if not appending or if file is empty
	info, err := file.Stat()
	if err == nil && (info.Size() == 0 || !c.Append) {
		c.write(t, []string{"epoch", "error", "time_seconds"})
	}
}

func (c *CSVLogger) OnEpochEnd(epoch int, loss float64, t *Trainer) {
	if c.writer == nil {
		return
	}

	elapsed := time.Since(c.start).Seconds()
	c.write(t, []string{
		strconv.Itoa(epoch),
		strconv.FormatFloat(loss, 'g', -1, 64),
		strconv.FormatFloat(elapsed, 'f', 2, 64),
	})
}

func (c *CSVLogger) write(t *Trainer, record []string) {
	if err := c.writer.Write(record); err != nil {
		t.Logger().Error("csv logger: write failed", "file", c.Filename, "err", err)
		return
	}
	c.writer.Flush()
}

func (c *CSVLogger) OnTrainEnd(t *Trainer) {
	if c.file != nil {
		c.writer.Flush()
		if err := c.file.Close(); err != nil {
			t.Logger().Error("csv logger: close failed", "file", c.Filename, "err", err)
		}
		c.file = nil
		c.writer = nil
	}
}
