package model

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"

	"github.com/Holisticnature/GeoLearn/pkg/errors"
)

// modelMagic はモデルファイルの先頭4バイトの識別子
var modelMagic = [4]byte{'G', 'L', 'R', 'N'}

// SaveModel はモデルをファイルに保存する
//
// ファイル形式: 4バイトのマジックナンバー、圧縮ペイロードの
// xxhash64チェックサム（8バイト、ビッグエンディアン）、
// gzip圧縮されたgobエンコードのモデル本体。
// 既存のファイルは置き換えられる（元のツールの挙動を踏襲）。
//
// パラメータ:
//   - model: 保存するモデル（StateManagerを持つ構造体のポインタ）
//   - filename: 保存先のファイルパス
//
// 使用例:
//
//	reg := linear.NewLinearRegression()
//	// ... モデルの学習 ...
//	err := model.SaveModel(reg, "LinearRegression_Model.gob.gz")
func SaveModel(model interface{}, filename string) error {
	// 上書きではなく削除してから作成する
	if _, err := os.Stat(filename); err == nil {
		if err := os.Remove(filename); err != nil {
			return fmt.Errorf("failed to remove existing model file: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return SaveModelToWriter(model, file)
}

// LoadModel はファイルからモデルを読み込む
//
// チェックサムを検証してからデコードする。検証に失敗した場合は
// errors.ErrChecksumMismatch を返す。
//
// パラメータ:
//   - model: 読み込み先のモデル（構造体のポインタ）
//   - filename: 読み込み元のファイルパス
func LoadModel(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return LoadModelFromReader(model, file)
}

// SaveModelToWriter はモデルをio.Writerに保存する
func SaveModelToWriter(model interface{}, w io.Writer) error {
	var payload bytes.Buffer
	zw := gzip.NewWriter(&payload)
	encoder := gob.NewEncoder(zw)
	if err := encoder.Encode(model); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to compress model: %w", err)
	}

	if _, err := w.Write(modelMagic[:]); err != nil {
		return fmt.Errorf("failed to write model header: %w", err)
	}
	var sum [8]byte
	binary.BigEndian.PutUint64(sum[:], xxhash.Sum64(payload.Bytes()))
	if _, err := w.Write(sum[:]); err != nil {
		return fmt.Errorf("failed to write model checksum: %w", err)
	}
	if _, err := w.Write(payload.Bytes()); err != nil {
		return fmt.Errorf("failed to write model payload: %w", err)
	}
	return nil
}

// LoadModelFromReader はio.Readerからモデルを読み込む
func LoadModelFromReader(model interface{}, r io.Reader) error {
	var header [12]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return fmt.Errorf("failed to read model header: %w", err)
	}
	if !bytes.Equal(header[:4], modelMagic[:]) {
		return errors.NewValueError("LoadModel", "not a GeoLearn model file")
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read model payload: %w", err)
	}
	if xxhash.Sum64(payload) != binary.BigEndian.Uint64(header[4:12]) {
		return errors.WithStack(errors.ErrChecksumMismatch)
	}

	zr, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to decompress model: %w", err)
	}
	defer zr.Close()

	decoder := gob.NewDecoder(zr)
	if err := decoder.Decode(model); err != nil {
		return fmt.Errorf("failed to decode model: %w", err)
	}
	return nil
}
