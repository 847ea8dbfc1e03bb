package snapshot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fame/distance"
	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/fattyacid"
	"github.com/arloliu/fame/format"
	"github.com/arloliu/fame/section"
	"github.com/arloliu/fame/source"
	"github.com/arloliu/fame/table"
)

var compressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func measurements() table.Frame[table.Measurement] {
	modeA := table.Mode{OnsetTemperature: 120, TemperatureStep: 4}
	modeB := table.Mode{OnsetTemperature: 150, TemperatureStep: 2}
	row := func(mode table.Mode, fa, label string, rt ...float64) table.Measurement {
		return table.Measurement{
			Mode:          mode,
			FattyAcid:     fattyacid.MustParse(fa).WithLabel(label),
			DeadTime:      1,
			RetentionTime: rt,
		}
	}

	return table.NewFrame([]table.Measurement{
		row(modeA, "C16:0", "Palmitic", 5, 5.1),
		row(modeA, "C18:0", "Stearic", 10, 10.2),
		row(modeA, "C18:1Δ9c", "Oleic", 11, 11.1, 11.2),
		row(modeA, "C18:3Δ9c,12c,15c", "", 12.5),
		row(modeB, "C16:0", "Palmitic", 4.9),
		row(modeB, "C18:0", "Stearic", 9.8),
		row(modeB, "C18:2Δ9c,12c", "Linoleic", 10.4),
	})
}

func metadata() Metadata {
	return Metadata{
		Name:        "Seed oils",
		Description: "Capillary column, two oven programs",
		Authors:     []string{"A. Analyst", "B. Chemist"},
		Version:     "1.2.0",
		Date:        "2024-03-01",
	}
}

func sourceRows(t *testing.T) table.Frame[source.Row] {
	t.Helper()
	settings := source.DefaultSettings()
	reference := fattyacid.MustParse("C16:0")
	settings.Relative = &reference
	out, err := source.Compute(measurements(), settings)
	require.NoError(t, err)

	return out
}

func TestMeasurements_RoundTrip(t *testing.T) {
	in := measurements()
	for _, c := range compressions {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteMeasurements(&buf, metadata(), in, WithCompression(c)))

			out, meta, err := ReadMeasurements(&buf)
			require.NoError(t, err)
			require.Equal(t, metadata(), meta)
			require.Equal(t, in.Rows, out.Rows)
			require.Equal(t, in.Fingerprint, out.Fingerprint)
		})
	}
}

func TestSource_RoundTrip(t *testing.T) {
	in := sourceRows(t)
	for _, c := range compressions {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteSource(&buf, metadata(), in, WithCompression(c), WithBigEndian()))

			out, meta, err := ReadSource(&buf)
			require.NoError(t, err)
			require.Equal(t, metadata(), meta)
			require.Equal(t, in.Rows, out.Rows)
			require.Equal(t, in.Fingerprint, out.Fingerprint)
		})
	}
}

func TestSource_RoundTripKeepsNaN(t *testing.T) {
	in, err := source.Compute(measurements(), source.DefaultSettings())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSource(&buf, Metadata{Name: "nan"}, in))
	out, _, err := ReadSource(&buf)
	require.NoError(t, err)
	require.Equal(t, in.Fingerprint, out.Fingerprint)
	require.True(t, out.Rows[0].RetentionTime.Relative.Valid)
}

func TestDistance_RoundTrip(t *testing.T) {
	in, err := distance.Compute(sourceRows(t))
	require.NoError(t, err)
	require.Equal(t, 9, in.Len())

	for _, c := range compressions {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteDistance(&buf, metadata(), in, WithCompression(c)))

			out, meta, err := ReadDistance(&buf)
			require.NoError(t, err)
			require.Equal(t, metadata(), meta)
			require.Equal(t, in.Rows, out.Rows)
		})
	}
}

func TestEmptyFrame(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDistance(&buf, Metadata{}, table.NewFrame[distance.Row](nil)))

	out, meta, err := ReadDistance(&buf)
	require.NoError(t, err)
	require.Zero(t, out.Len())
	require.Equal(t, Metadata{}, meta)
}

func TestInspect(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMeasurements(&buf, metadata(), measurements(), WithCompression(format.CompressionS2)))

	h, meta, err := Inspect(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, format.KindMeasurement, h.Kind)
	require.Equal(t, format.CompressionS2, h.Compression)
	require.Equal(t, uint32(7), h.Rows)
	require.Equal(t, uint16(8), h.Columns)
	require.Equal(t, "Seed oils", meta.Name)
}

func TestRead_Errors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMeasurements(&buf, metadata(), measurements()))
	valid := buf.Bytes()

	t.Run("kind", func(t *testing.T) {
		_, _, err := ReadSource(bytes.NewReader(valid))
		require.ErrorIs(t, err, errs.ErrUnexpectedTableKind)
	})

	t.Run("checksum", func(t *testing.T) {
		data := bytes.Clone(valid)
		data[len(data)-1] ^= 0xff
		_, _, err := ReadMeasurements(bytes.NewReader(data))
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("truncated", func(t *testing.T) {
		_, _, err := ReadMeasurements(bytes.NewReader(valid[:len(valid)-3]))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("header", func(t *testing.T) {
		_, _, err := ReadMeasurements(bytes.NewReader(valid[:section.HeaderSize-1]))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("magic", func(t *testing.T) {
		data := bytes.Clone(valid)
		copy(data, "FAMX")
		_, _, err := ReadMeasurements(bytes.NewReader(data))
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})
}

func TestRead_MissingColumn(t *testing.T) {
	// A distance snapshot relabelled as a measurement snapshot has no
	// FattyAcid.* columns, only FattyAcid.From.* and FattyAcid.To.*.
	var buf bytes.Buffer
	in, err := distance.Compute(sourceRows(t))
	require.NoError(t, err)
	require.NoError(t, WriteDistance(&buf, metadata(), in, WithCompression(format.CompressionNone)))

	data := buf.Bytes()
	h, _, err := Inspect(data)
	require.NoError(t, err)
	h.Kind = format.KindMeasurement
	copy(data, h.Bytes())

	_, _, err = ReadMeasurements(bytes.NewReader(data))
	var schemaErr *errs.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.ErrorIs(t, err, errs.ErrMissingColumn)
	require.Equal(t, "FattyAcid.Carbons", schemaErr.Column)
}

func TestMetadata_Validate(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMeasurements(&buf, Metadata{Name: "x", Date: "01/03/2024"}, measurements())
	require.ErrorIs(t, err, errs.ErrInvalidMetadata)
	require.Zero(t, buf.Len())
}

func TestWithCompression_Invalid(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMeasurements(&buf, metadata(), measurements(), WithCompression(format.CompressionType(0x7f)))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestFileName(t *testing.T) {
	require.Equal(t, "oils.source.fame", FileName("oils", format.KindSource))
	require.Equal(t, "oils.distance.fame", FileName("oils", format.KindDistance))
	require.Equal(t, "oils.fame", FileName("oils", format.KindMeasurement))
	require.Equal(t, "untitled", Metadata{}.Title())
}
