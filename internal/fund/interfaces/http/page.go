package http

// uploadPageHTML 根路径的上传表单页面
const uploadPageHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Fund Barometer</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        .container { max-width: 600px; margin: 0 auto; }
        .upload-area {
            border: 2px dashed #ccc;
            padding: 40px;
            text-align: center;
            margin: 20px 0;
        }
        input[type="file"] { margin: 20px 0; }
        button {
            background: #007bff;
            color: white;
            padding: 10px 20px;
            border: none;
            cursor: pointer;
        }
        .result { margin-top: 20px; padding: 20px; background: #f8f9fa; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Fund Barometer</h1>
        <form action="/api/v1/funds/upload" method="post" enctype="multipart/form-data">
            <div class="upload-area">
                <p>Select the Excel workbook containing mutual fund data</p>
                <input type="file" name="excel_file" accept=".xlsx,.xls" required>
                <br>
                <button type="submit">Upload and Ingest</button>
            </div>
        </form>
    </div>
</body>
</html>
`
